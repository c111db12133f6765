package features

import (
	"context"

	"spatialdataapi/src/domain"
	"spatialdataapi/src/repositories"
	"spatialdataapi/src/services/events"
)

// FeatureService orchestrates CRUD for one feature kind. The publisher is
// optional; when nil, mutations simply don't emit events.
type FeatureService struct {
	featureRepository *repositories.FeatureRepository
	eventPublisher    *events.FeatureEventPublisher
}

func NewFeatureService(
	featureRepository *repositories.FeatureRepository,
	eventPublisher *events.FeatureEventPublisher,
) *FeatureService {
	return &FeatureService{
		featureRepository: featureRepository,
		eventPublisher:    eventPublisher,
	}
}

func (fs *FeatureService) Kind() domain.FeatureKind {
	return fs.featureRepository.Kind()
}

func (fs *FeatureService) publish(ctx context.Context, action events.FeatureAction, featureIDs []int64) {
	if fs.eventPublisher == nil {
		return
	}
	fs.eventPublisher.PublishFeatureEvents(ctx, fs.Kind(), action, featureIDs)
}
