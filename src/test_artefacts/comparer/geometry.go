package comparer

import (
	"math"

	"github.com/google/go-cmp/cmp"
	"github.com/paulmach/orb"
)

// CoordinateTolerance compares coordinate pairs within a floating-point
// tolerance in degrees. The storage round trip through WKT and GeoJSON may
// not be bit-exact.
func CoordinateTolerance(tolerance float64) cmp.Option {
	return cmp.Comparer(func(x, y orb.Point) bool {
		return math.Abs(x.Lon()-y.Lon()) <= tolerance && math.Abs(x.Lat()-y.Lat()) <= tolerance
	})
}
