package features

import (
	"context"
	"fmt"

	"spatialdataapi/src/services/events"
)

func (fs *FeatureService) DeleteFeature(ctx context.Context, id int64) error {
	if err := fs.featureRepository.Delete(ctx, id); err != nil {
		return fmt.Errorf("FeatureService.DeleteFeature - failed to delete %s %d: %w", fs.Kind(), id, err)
	}

	fs.publish(ctx, events.FeatureDeleted, []int64{id})

	return nil
}
