package features

import (
	"context"
	"fmt"

	"spatialdataapi/src/domain"
	"spatialdataapi/src/services/events"
)

// UpdateFeature is a full geometry replacement with partial property patch:
// name and description are applied only when present in the input.
func (fs *FeatureService) UpdateFeature(ctx context.Context, id int64, input domain.FeatureInput) error {
	if err := fs.featureRepository.Update(ctx, id, input); err != nil {
		return fmt.Errorf("FeatureService.UpdateFeature - failed to update %s %d: %w", fs.Kind(), id, err)
	}

	fs.publish(ctx, events.FeatureUpdated, []int64{id})

	return nil
}
