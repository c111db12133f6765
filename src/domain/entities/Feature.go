package entities

import (
	"time"

	"github.com/paulmach/orb/geojson"
)

// Feature is one persisted row of point_features or polygon_features.
// Geometry holds the engine-produced GeoJSON object unchanged; the database
// is the canonical encoder for reads.
type Feature struct {
	ID          int64
	Name        string
	Description string
	Geometry    *geojson.Geometry
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
