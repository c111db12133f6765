package server

import (
	"net/http"
	"strconv"

	"spatialdataapi/src/domain"
)

func (s *Server) PointsWithinDistance(w http.ResponseWriter, r *http.Request) {
	lat, ok := s.queryFloat(w, r, "lat")
	if !ok {
		return
	}
	lon, ok := s.queryFloat(w, r, "lon")
	if !ok {
		return
	}
	distance, ok := s.queryFloat(w, r, "distance")
	if !ok {
		return
	}

	points, err := s.spatialQueryService.PointsWithinDistance(r.Context(), lat, lon, distance)
	if err != nil {
		s.writeServiceError(w, r, err, domain.KindPoint)
		return
	}

	s.writeJSON(w, http.StatusOK, MapFeaturesToCollection(points))
}

func (s *Server) PointsInPolygon(w http.ResponseWriter, r *http.Request) {
	polygonID, ok := s.pathID(w, r, "polygon_id")
	if !ok {
		return
	}

	points, err := s.spatialQueryService.PointsInPolygon(r.Context(), polygonID)
	if err != nil {
		// The only missing entity here can be the polygon.
		s.writeServiceError(w, r, err, domain.KindPolygon)
		return
	}

	s.writeJSON(w, http.StatusOK, MapFeaturesToCollection(points))
}

func (s *Server) PolygonsContainingPoint(w http.ResponseWriter, r *http.Request) {
	lat, ok := s.queryFloat(w, r, "lat")
	if !ok {
		return
	}
	lon, ok := s.queryFloat(w, r, "lon")
	if !ok {
		return
	}

	polygons, err := s.spatialQueryService.PolygonsContainingPoint(r.Context(), lat, lon)
	if err != nil {
		s.writeServiceError(w, r, err, domain.KindPolygon)
		return
	}

	s.writeJSON(w, http.StatusOK, MapFeaturesToCollection(polygons))
}

func (s *Server) OverlappingPolygons(w http.ResponseWriter, r *http.Request) {
	polygonID, ok := s.pathID(w, r, "polygon_id")
	if !ok {
		return
	}

	polygons, err := s.spatialQueryService.OverlappingPolygons(r.Context(), polygonID)
	if err != nil {
		s.writeServiceError(w, r, err, domain.KindPolygon)
		return
	}

	s.writeJSON(w, http.StatusOK, MapFeaturesToCollection(polygons))
}

func (s *Server) queryFloat(w http.ResponseWriter, r *http.Request, name string) (float64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		s.writeDetail(w, http.StatusBadRequest, "Query parameter '"+name+"' is required")
		return 0, false
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		s.writeDetail(w, http.StatusBadRequest, "Query parameter '"+name+"' must be a number")
		return 0, false
	}

	return value, true
}
