package features

import (
	"context"
	"fmt"

	"spatialdataapi/src/domain/entities"
)

func (fs *FeatureService) GetAllFeatures(ctx context.Context) ([]entities.Feature, error) {
	features, err := fs.featureRepository.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("FeatureService.GetAllFeatures - failed to list %s features: %w", fs.Kind(), err)
	}

	return features, nil
}
