package stubs

import (
	"spatialdataapi/src/domain"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

type FeatureInputStub struct {
	input domain.FeatureInput
}

// NewPointInputStub builds a valid point create/update payload with random
// but plausible coordinates.
func NewPointInputStub() FeatureInputStub {
	name := gofakeit.City()
	description := gofakeit.Sentence(6)

	return FeatureInputStub{input: domain.FeatureInput{
		Name:        &name,
		Description: &description,
		Geometry:    geojson.NewGeometry(orb.Point{gofakeit.Longitude(), gofakeit.Latitude()}),
	}}
}

// NewPolygonInputStub builds a small closed square around a random center.
func NewPolygonInputStub() FeatureInputStub {
	name := gofakeit.City()
	description := gofakeit.Sentence(6)

	// Keep the center away from the poles/antimeridian so the square is valid.
	lon := gofakeit.Float64Range(-170, 170)
	lat := gofakeit.Float64Range(-80, 80)

	return FeatureInputStub{input: domain.FeatureInput{
		Name:        &name,
		Description: &description,
		Geometry:    SquareGeometry(lon, lat, 0.01),
	}}
}

func (fs FeatureInputStub) WithName(name string) FeatureInputStub {
	fs.input.Name = &name
	return fs
}

func (fs FeatureInputStub) WithoutName() FeatureInputStub {
	fs.input.Name = nil
	return fs
}

func (fs FeatureInputStub) WithDescription(description string) FeatureInputStub {
	fs.input.Description = &description
	return fs
}

func (fs FeatureInputStub) WithoutDescription() FeatureInputStub {
	fs.input.Description = nil
	return fs
}

func (fs FeatureInputStub) WithGeometry(geom *geojson.Geometry) FeatureInputStub {
	fs.input.Geometry = geom
	return fs
}

func (fs FeatureInputStub) Get() domain.FeatureInput {
	return fs.input
}

// PointGeometry is a shorthand for tests that need exact coordinates.
func PointGeometry(lon, lat float64) *geojson.Geometry {
	return geojson.NewGeometry(orb.Point{lon, lat})
}

// SquareGeometry builds a closed square ring centered on (lon, lat) with the
// given half-side length in degrees.
func SquareGeometry(lon, lat, halfSide float64) *geojson.Geometry {
	ring := orb.Ring{
		{lon - halfSide, lat - halfSide},
		{lon + halfSide, lat - halfSide},
		{lon + halfSide, lat + halfSide},
		{lon - halfSide, lat + halfSide},
		{lon - halfSide, lat - halfSide},
	}
	return geojson.NewGeometry(orb.Polygon{ring})
}
