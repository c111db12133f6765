package server

import (
	"fmt"
	"time"

	"spatialdataapi/src/domain"
	"spatialdataapi/src/domain/entities"

	"github.com/paulmach/orb/geojson"
)

// FeatureDTO is the wire shape of a single GeoJSON feature. Geometry is kept
// as the parsed GeoJSON object; properties stay a free-form mapping so the
// partial-update semantics (field present vs. absent) survive decoding.
type FeatureDTO struct {
	Type       string            `json:"type"`
	Geometry   *geojson.Geometry `json:"geometry"`
	Properties map[string]any    `json:"properties"`
}

type FeatureCollectionDTO struct {
	Type     string       `json:"type"`
	Features []FeatureDTO `json:"features"`
}

type CreateFeaturesResponse struct {
	Status     string  `json:"status"`
	CreatedIDs []int64 `json:"created_ids"`
}

type UpdateFeatureResponse struct {
	Status    string `json:"status"`
	UpdatedID int64  `json:"updated_id"`
}

type DeleteFeatureResponse struct {
	Status    string `json:"status"`
	DeletedID int64  `json:"deleted_id"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}

// MapRequestToInputs validates the top-level collection tag and converts
// every feature. Validation is all-up-front: any bad feature rejects the
// whole payload before a single row is written.
func MapRequestToInputs(collection FeatureCollectionDTO) ([]domain.FeatureInput, error) {
	if collection.Type != "FeatureCollection" {
		return nil, fmt.Errorf("top-level type must be FeatureCollection: %w", domain.ErrMalformedPayload)
	}

	inputs := make([]domain.FeatureInput, 0, len(collection.Features))
	for i, feature := range collection.Features {
		input, err := MapRequestToInput(feature)
		if err != nil {
			return nil, fmt.Errorf("feature %d: %w", i, err)
		}
		inputs = append(inputs, input)
	}

	return inputs, nil
}

// MapRequestToInput converts one wire feature to a domain input. Name and
// description become pointers only when the property is present.
func MapRequestToInput(feature FeatureDTO) (domain.FeatureInput, error) {
	if feature.Type != "Feature" {
		return domain.FeatureInput{}, fmt.Errorf("feature type must be Feature: %w", domain.ErrMalformedPayload)
	}

	input := domain.FeatureInput{Geometry: feature.Geometry}

	if raw, ok := feature.Properties["name"]; ok {
		name, ok := raw.(string)
		if !ok {
			return domain.FeatureInput{}, fmt.Errorf("property name must be a string: %w", domain.ErrMalformedPayload)
		}
		input.Name = &name
	}

	if raw, ok := feature.Properties["description"]; ok {
		description, ok := raw.(string)
		if !ok {
			return domain.FeatureInput{}, fmt.Errorf("property description must be a string: %w", domain.ErrMalformedPayload)
		}
		input.Description = &description
	}

	return input, nil
}

func MapFeatureToResponse(feature entities.Feature) FeatureDTO {
	return FeatureDTO{
		Type:     "Feature",
		Geometry: feature.Geometry,
		Properties: map[string]any{
			"id":          feature.ID,
			"name":        feature.Name,
			"description": feature.Description,
			"created_at":  feature.CreatedAt.UTC().Format(time.RFC3339),
			"updated_at":  feature.UpdatedAt.UTC().Format(time.RFC3339),
		},
	}
}

// MapFeaturesToCollection preserves the input row order; it never re-sorts.
func MapFeaturesToCollection(featureRows []entities.Feature) FeatureCollectionDTO {
	dtos := make([]FeatureDTO, 0, len(featureRows))
	for _, feature := range featureRows {
		dtos = append(dtos, MapFeatureToResponse(feature))
	}

	return FeatureCollectionDTO{Type: "FeatureCollection", Features: dtos}
}
