package spatial

import (
	"context"
	"fmt"

	"spatialdataapi/src/domain/entities"
)

func (ss *SpatialQueryService) PointsInPolygon(ctx context.Context, polygonID int64) ([]entities.Feature, error) {
	// 404 before running the containment query.
	if _, err := ss.polygonRepository.GetByID(ctx, polygonID); err != nil {
		return nil, fmt.Errorf("SpatialQueryService.PointsInPolygon - %w", err)
	}

	points, err := ss.spatialQueryRepository.PointsInPolygon(ctx, polygonID)
	if err != nil {
		return nil, fmt.Errorf("SpatialQueryService.PointsInPolygon - %w", err)
	}

	return points, nil
}
