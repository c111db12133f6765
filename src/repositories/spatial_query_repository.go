package repositories

import (
	"context"
	"fmt"

	"spatialdataapi/src/domain/entities"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SpatialQueryRepository runs the read-only predicate queries. All spatial
// evaluation (geodesic distance, containment, intersection) is delegated to
// PostGIS; this layer only constructs the queries.
type SpatialQueryRepository struct {
	pool *pgxpool.Pool
}

func NewSpatialQueryRepository(pool *pgxpool.Pool) *SpatialQueryRepository {
	return &SpatialQueryRepository{pool: pool}
}

// PointsWithinDistance returns every point whose geodesic distance to
// (lon, lat) is at most distanceMeters. The geography cast makes ST_DWithin
// measure on the ellipsoid instead of in degrees.
func (sqr *SpatialQueryRepository) PointsWithinDistance(ctx context.Context, lat float64, lon float64, distanceMeters float64) ([]entities.Feature, error) {
	query := `
		SELECT id, name, description, ST_AsGeoJSON(geom), created_at, updated_at
		FROM point_features
		WHERE ST_DWithin(
			geom::geography,
			ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography,
			$3
		)
		ORDER BY id`

	rows, err := sqr.pool.Query(ctx, query, lon, lat, distanceMeters)
	if err != nil {
		return nil, fmt.Errorf("SpatialQueryRepository.PointsWithinDistance - query failed: %w", err)
	}
	defer rows.Close()

	features, err := collectFeatures(rows)
	if err != nil {
		return nil, fmt.Errorf("SpatialQueryRepository.PointsWithinDistance - %w", err)
	}

	return features, nil
}

// PointsInPolygon returns every point topologically within the polygon's
// boundary. Boundary-inclusive semantics are the engine's ST_Within call.
// The polygon's existence is checked by the service before this runs.
func (sqr *SpatialQueryRepository) PointsInPolygon(ctx context.Context, polygonID int64) ([]entities.Feature, error) {
	query := `
		SELECT p.id, p.name, p.description, ST_AsGeoJSON(p.geom), p.created_at, p.updated_at
		FROM point_features p
		JOIN polygon_features pf ON pf.id = $1
		WHERE ST_Within(p.geom, pf.geom)
		ORDER BY p.id`

	rows, err := sqr.pool.Query(ctx, query, polygonID)
	if err != nil {
		return nil, fmt.Errorf("SpatialQueryRepository.PointsInPolygon - query failed: %w", err)
	}
	defer rows.Close()

	features, err := collectFeatures(rows)
	if err != nil {
		return nil, fmt.Errorf("SpatialQueryRepository.PointsInPolygon - %w", err)
	}

	return features, nil
}

// PolygonsContainingPoint returns every polygon within a fixed 1-meter
// geodesic tolerance of (lon, lat). This is a documented approximation, not
// a strict point-in-polygon test: the buffer absorbs floating-point
// mismatches at polygon boundaries.
func (sqr *SpatialQueryRepository) PolygonsContainingPoint(ctx context.Context, lat float64, lon float64) ([]entities.Feature, error) {
	query := `
		SELECT id, name, description, ST_AsGeoJSON(geom), created_at, updated_at
		FROM polygon_features
		WHERE ST_DWithin(
			geom::geography,
			ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography,
			1.0
		)
		ORDER BY id`

	rows, err := sqr.pool.Query(ctx, query, lon, lat)
	if err != nil {
		return nil, fmt.Errorf("SpatialQueryRepository.PolygonsContainingPoint - query failed: %w", err)
	}
	defer rows.Close()

	features, err := collectFeatures(rows)
	if err != nil {
		return nil, fmt.Errorf("SpatialQueryRepository.PolygonsContainingPoint - %w", err)
	}

	return features, nil
}

// OverlappingPolygons returns every other polygon intersecting the source
// polygon's geometry. The source polygon itself is always excluded.
func (sqr *SpatialQueryRepository) OverlappingPolygons(ctx context.Context, polygonID int64) ([]entities.Feature, error) {
	query := `
		SELECT p.id, p.name, p.description, ST_AsGeoJSON(p.geom), p.created_at, p.updated_at
		FROM polygon_features p
		JOIN polygon_features src ON src.id = $1
		WHERE p.id <> src.id
		  AND ST_Intersects(p.geom, src.geom)
		ORDER BY p.id`

	rows, err := sqr.pool.Query(ctx, query, polygonID)
	if err != nil {
		return nil, fmt.Errorf("SpatialQueryRepository.OverlappingPolygons - query failed: %w", err)
	}
	defer rows.Close()

	features, err := collectFeatures(rows)
	if err != nil {
		return nil, fmt.Errorf("SpatialQueryRepository.OverlappingPolygons - %w", err)
	}

	return features, nil
}
