package features

import (
	"context"
	"fmt"

	"spatialdataapi/src/domain/entities"
)

func (fs *FeatureService) GetFeature(ctx context.Context, id int64) (*entities.Feature, error) {
	feature, err := fs.featureRepository.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("FeatureService.GetFeature - failed to get %s %d: %w", fs.Kind(), id, err)
	}

	return feature, nil
}
