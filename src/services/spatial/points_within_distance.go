package spatial

import (
	"context"
	"fmt"

	"spatialdataapi/src/domain"
	"spatialdataapi/src/domain/entities"
)

func (ss *SpatialQueryService) PointsWithinDistance(ctx context.Context, lat float64, lon float64, distanceMeters float64) ([]entities.Feature, error) {
	if distanceMeters < 0 {
		return nil, fmt.Errorf("SpatialQueryService.PointsWithinDistance - distance must be non-negative: %w", domain.ErrMalformedPayload)
	}

	points, err := ss.spatialQueryRepository.PointsWithinDistance(ctx, lat, lon, distanceMeters)
	if err != nil {
		return nil, fmt.Errorf("SpatialQueryService.PointsWithinDistance - %w", err)
	}

	return points, nil
}
