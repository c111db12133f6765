package geometry

import (
	"fmt"
	"spatialdataapi/src/domain"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/geojson"
)

// Encode validates an incoming GeoJSON geometry against the expected kind
// and renders it as WKT for the engine's ST_GeomFromText(.., 4326).
//
// Only the type tag and the coordinate array shape are checked here. Ring
// topology (closure, self-intersection) is the spatial engine's call:
// malformed rings fail at the storage boundary, not in this codec.
func Encode(kind domain.FeatureKind, geom *geojson.Geometry) (string, error) {
	if geom == nil {
		return "", fmt.Errorf("geometry is required: %w", domain.ErrMalformedPayload)
	}

	if geom.Type != string(kind) {
		return "", fmt.Errorf("expected %s geometry, got %q: %w", kind, geom.Type, domain.ErrInvalidFeatureType)
	}

	switch g := geom.Geometry().(type) {
	case orb.Point:
		return wkt.MarshalString(g), nil

	case orb.Polygon:
		if len(g) == 0 {
			return "", fmt.Errorf("polygon must have at least one ring: %w", domain.ErrMalformedPayload)
		}
		for i, ring := range g {
			if len(ring) == 0 {
				return "", fmt.Errorf("polygon ring %d is empty: %w", i, domain.ErrMalformedPayload)
			}
		}
		return wkt.MarshalString(g), nil

	default:
		return "", fmt.Errorf("unsupported geometry type %q: %w", geom.Type, domain.ErrInvalidFeatureType)
	}
}

// Decode parses the GeoJSON object produced by the engine's ST_AsGeoJSON.
// The engine is the canonical encoder for reads, so the geometry is passed
// through unchanged.
func Decode(raw []byte) (*geojson.Geometry, error) {
	geom, err := geojson.UnmarshalGeometry(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode engine geometry: %w", err)
	}
	return geom, nil
}
