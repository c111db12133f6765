package domain

import "github.com/paulmach/orb/geojson"

// SRID of every persisted geometry. The store never mixes reference systems.
const SRID = 4326

// FeatureKind discriminates the two persisted feature kinds. The value
// doubles as the expected GeoJSON geometry type tag.
type FeatureKind string

const (
	KindPoint   FeatureKind = "Point"
	KindPolygon FeatureKind = "Polygon"
)

// DefaultName is assigned on create when the payload carries no name.
func (k FeatureKind) DefaultName() string {
	switch k {
	case KindPolygon:
		return "Unnamed Polygon"
	default:
		return "Unnamed Point"
	}
}

// FeatureInput is the decoded payload of one incoming feature. Name and
// Description are pointers so "absent from the request" and "present but
// empty" stay distinguishable: on update only present fields are applied,
// while geometry is always replaced.
type FeatureInput struct {
	Name        *string
	Description *string
	Geometry    *geojson.Geometry
}
