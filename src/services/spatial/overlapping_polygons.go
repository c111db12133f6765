package spatial

import (
	"context"
	"fmt"

	"spatialdataapi/src/domain/entities"
)

func (ss *SpatialQueryService) OverlappingPolygons(ctx context.Context, polygonID int64) ([]entities.Feature, error) {
	// 404 before running the intersection query.
	if _, err := ss.polygonRepository.GetByID(ctx, polygonID); err != nil {
		return nil, fmt.Errorf("SpatialQueryService.OverlappingPolygons - %w", err)
	}

	polygons, err := ss.spatialQueryRepository.OverlappingPolygons(ctx, polygonID)
	if err != nil {
		return nil, fmt.Errorf("SpatialQueryService.OverlappingPolygons - %w", err)
	}

	return polygons, nil
}
