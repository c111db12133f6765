package spatial

import (
	"context"
	"fmt"

	"spatialdataapi/src/domain/entities"
)

// PolygonsContainingPoint uses the engine's 1-meter geography buffer rather
// than a strict containment test. Approximate on purpose; see the repository
// query for the rationale.
func (ss *SpatialQueryService) PolygonsContainingPoint(ctx context.Context, lat float64, lon float64) ([]entities.Feature, error) {
	polygons, err := ss.spatialQueryRepository.PolygonsContainingPoint(ctx, lat, lon)
	if err != nil {
		return nil, fmt.Errorf("SpatialQueryService.PolygonsContainingPoint - %w", err)
	}

	return polygons, nil
}
