package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"spatialdataapi/src/domain"
	"spatialdataapi/src/infra/metrics"
	"spatialdataapi/src/services/features"
	"spatialdataapi/src/services/spatial"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Server wires the HTTP surface: per-kind feature CRUD, the four spatial
// queries, health and metrics.
type Server struct {
	logger                *slog.Logger
	server                *http.Server
	mux                   *http.ServeMux
	port                  int
	pool                  *pgxpool.Pool
	pointFeatureService   *features.FeatureService
	polygonFeatureService *features.FeatureService
	spatialQueryService   *spatial.SpatialQueryService
}

func NewServer(
	logger *slog.Logger,
	port int,
	pool *pgxpool.Pool,
	pointFeatureService *features.FeatureService,
	polygonFeatureService *features.FeatureService,
	spatialQueryService *spatial.SpatialQueryService,
	rateLimiter *RateLimiter,
) *Server {
	server := &Server{
		mux:                   http.NewServeMux(),
		port:                  port,
		logger:                logger,
		pool:                  pool,
		pointFeatureService:   pointFeatureService,
		polygonFeatureService: polygonFeatureService,
		spatialQueryService:   spatialQueryService,
	}

	server.mux.HandleFunc("POST /api/points", server.createFeatures(pointFeatureService))
	server.mux.HandleFunc("GET /api/points", server.getAllFeatures(pointFeatureService))
	server.mux.HandleFunc("GET /api/points/{id}", server.getFeature(pointFeatureService))
	server.mux.HandleFunc("PUT /api/points/{id}", server.updateFeature(pointFeatureService))
	server.mux.HandleFunc("DELETE /api/points/{id}", server.deleteFeature(pointFeatureService))

	server.mux.HandleFunc("POST /api/polygons", server.createFeatures(polygonFeatureService))
	server.mux.HandleFunc("GET /api/polygons", server.getAllFeatures(polygonFeatureService))
	server.mux.HandleFunc("GET /api/polygons/{id}", server.getFeature(polygonFeatureService))
	server.mux.HandleFunc("PUT /api/polygons/{id}", server.updateFeature(polygonFeatureService))
	server.mux.HandleFunc("DELETE /api/polygons/{id}", server.deleteFeature(polygonFeatureService))

	server.mux.HandleFunc("GET /api/spatial/points-within-distance", server.PointsWithinDistance)
	server.mux.HandleFunc("GET /api/spatial/points-in-polygon/{polygon_id}", server.PointsInPolygon)
	server.mux.HandleFunc("GET /api/spatial/polygons-containing-point", server.PolygonsContainingPoint)
	server.mux.HandleFunc("GET /api/spatial/overlapping-polygons/{polygon_id}", server.OverlappingPolygons)

	server.mux.Handle("GET /metrics", metrics.Handler())
	server.mux.HandleFunc("GET /healthz", server.Healthz)

	handler := MetricsMiddleware(CORSMiddleware(server.mux))
	if rateLimiter != nil {
		handler = rateLimiter.Middleware(logger, handler)
	}

	server.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return server
}

func (s *Server) Start() error {
	s.logger.Info("Server started", "port", s.port)

	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) Healthz(w http.ResponseWriter, r *http.Request) {
	if err := s.pool.Ping(r.Context()); err != nil {
		s.logger.Error("Health check failed", "error", err)
		s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("Failed to write JSON response", "error", err)
	}
}

func (s *Server) writeDetail(w http.ResponseWriter, status int, detail string) {
	s.writeJSON(w, status, ErrorResponse{Detail: detail})
}

// writeServiceError maps domain errors onto the HTTP taxonomy: 400 for
// malformed payloads and kind mismatches, 404 for missing features, 500 for
// everything the storage layer rejected.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error, kind domain.FeatureKind) {
	switch {
	case errors.Is(err, domain.ErrFeatureNotFound):
		s.writeDetail(w, http.StatusNotFound, fmt.Sprintf("%s not found", kind))
	case errors.Is(err, domain.ErrInvalidFeatureType):
		s.writeDetail(w, http.StatusBadRequest, fmt.Sprintf("Invalid feature format. Must be %s type.", kind))
	case errors.Is(err, domain.ErrMalformedPayload):
		s.writeDetail(w, http.StatusBadRequest, "Invalid GeoJSON format.")
	default:
		s.logger.Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		s.writeDetail(w, http.StatusInternalServerError, domain.ErrUnavailableServer.Error())
	}
}
