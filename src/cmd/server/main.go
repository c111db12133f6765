package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"spatialdataapi/src/helper/env"
	"spatialdataapi/src/infra/kafka"
	"spatialdataapi/src/infra/postgres"
	"spatialdataapi/src/infra/redis"
	"spatialdataapi/src/repositories"
	"spatialdataapi/src/server"
	"spatialdataapi/src/services/events"
	"spatialdataapi/src/services/features"
	"spatialdataapi/src/services/spatial"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

func main() {
	// Local development convenience; deployed environments set real env vars.
	_ = godotenv.Load()

	log.SetOutput(os.Stdout)
	log.Println("Starting spatial data API server...")

	app := fx.New(
		fx.Provide(
			newLogger,
			newSQLClient,
			newFeatureEventPublisher,
			newRateLimiter,
			newFeatureServices,
			newSpatialQueryService,
			newServer,
		),

		fx.Invoke(ensureSchema),
		fx.Invoke(registerServerHooks),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	<-app.Done()
}

func newLogger() *slog.Logger {
	logLevel := env.GetString("LOG_LEVEL", "info")
	var level slog.Level

	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}

func newSQLClient() (*pgxpool.Pool, error) {
	dbHost := env.MustGetString("DB_HOST")
	dbPort := env.GetString("DB_PORT", "5432")
	dbname := env.MustGetString("DB_NAME")
	dbUser := env.MustGetString("DB_USER")
	dbPassword := env.MustGetString("DB_PASSWORD")
	maxConnections := env.GetInt("DB_MAX_POOL_CONNECTIONS", 25)

	return postgres.NewPostgresClient(dbHost, dbPort, dbname, dbUser, dbPassword, maxConnections)
}

func ensureSchema(pool *pgxpool.Pool, logger *slog.Logger) error {
	if err := postgres.EnsureSchema(context.Background(), pool); err != nil {
		return err
	}
	logger.Info("Database schema ready")
	return nil
}

// newFeatureEventPublisher is optional infrastructure: without KAFKA_BROKERS
// the services run without event publishing.
func newFeatureEventPublisher(logger *slog.Logger) (*events.FeatureEventPublisher, error) {
	brokers := env.GetString("KAFKA_BROKERS")
	if brokers == "" {
		logger.Info("KAFKA_BROKERS not set, feature events disabled")
		return nil, nil
	}

	kafkaClient, err := kafka.NewKafkaClient(brokers)
	if err != nil {
		return nil, err
	}

	topic := env.GetString("KAFKA_FEATURE_EVENTS_TOPIC", "spatial.feature-events")
	return events.NewFeatureEventPublisher(logger, kafkaClient, topic), nil
}

// newRateLimiter is optional as well: no REDIS_ADDR means no rate limiting.
func newRateLimiter(logger *slog.Logger) *server.RateLimiter {
	addr := env.GetString("REDIS_ADDR")
	if addr == "" {
		logger.Info("REDIS_ADDR not set, rate limiting disabled")
		return nil
	}

	redisClient := redis.NewRedisClient(
		addr,
		env.GetString("REDIS_PASSWORD"),
		env.GetInt("REDIS_POOL_SIZE", 10),
	)

	limit := env.GetInt("RATE_LIMIT_PER_MINUTE", 600)
	return server.NewRateLimiter(redisClient, limit, time.Minute)
}

// featureServices bundles the two per-kind services so fx can tell them
// apart without named providers.
type featureServices struct {
	points   *features.FeatureService
	polygons *features.FeatureService
}

func newFeatureServices(pool *pgxpool.Pool, eventPublisher *events.FeatureEventPublisher) featureServices {
	return featureServices{
		points:   features.NewFeatureService(repositories.NewPointRepository(pool), eventPublisher),
		polygons: features.NewFeatureService(repositories.NewPolygonRepository(pool), eventPublisher),
	}
}

func newSpatialQueryService(pool *pgxpool.Pool) *spatial.SpatialQueryService {
	return spatial.NewSpatialQueryService(
		repositories.NewSpatialQueryRepository(pool),
		repositories.NewPolygonRepository(pool),
	)
}

func newServer(
	logger *slog.Logger,
	pool *pgxpool.Pool,
	services featureServices,
	spatialQueryService *spatial.SpatialQueryService,
	rateLimiter *server.RateLimiter,
) *server.Server {
	port := env.GetInt("SERVER_PORT", 8000)

	return server.NewServer(logger, port, pool, services.points, services.polygons, spatialQueryService, rateLimiter)
}

func registerServerHooks(lc fx.Lifecycle, srv *server.Server) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.Start(); err != nil && err != http.ErrServerClosed {
					log.Fatalf("Server failed: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Printf("Server forced to shutdown: %v", err)
				return err
			}
			log.Println("Server exited gracefully")
			return nil
		},
	})
}
