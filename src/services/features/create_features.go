package features

import (
	"context"
	"fmt"

	"spatialdataapi/src/domain"
	"spatialdataapi/src/services/events"
)

// CreateFeatures persists a batch of features and returns the generated ids
// in input order. The batch is all-or-nothing: validation happens before the
// first insert and the repository commits every row or none.
func (fs *FeatureService) CreateFeatures(ctx context.Context, inputs []domain.FeatureInput) ([]int64, error) {
	ids, err := fs.featureRepository.CreateMany(ctx, inputs)
	if err != nil {
		return nil, fmt.Errorf("FeatureService.CreateFeatures - failed to create %s features: %w", fs.Kind(), err)
	}

	fs.publish(ctx, events.FeatureCreated, ids)

	return ids, nil
}
