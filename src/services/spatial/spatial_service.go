package spatial

import (
	"spatialdataapi/src/repositories"
)

// SpatialQueryService answers the four spatial relationship queries. It owns
// parameter validation and the 404 checks for polygon-referencing queries;
// the predicate evaluation itself lives in the spatial query repository.
type SpatialQueryService struct {
	spatialQueryRepository *repositories.SpatialQueryRepository
	polygonRepository      *repositories.FeatureRepository
}

func NewSpatialQueryService(
	spatialQueryRepository *repositories.SpatialQueryRepository,
	polygonRepository *repositories.FeatureRepository,
) *SpatialQueryService {
	return &SpatialQueryService{
		spatialQueryRepository: spatialQueryRepository,
		polygonRepository:      polygonRepository,
	}
}
