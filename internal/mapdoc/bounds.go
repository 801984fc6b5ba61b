package mapdoc

import (
	"github.com/twpayne/go-geom"

	"historicmap/internal/types"
)

// Bounds is the smallest lat/lon rectangle covering a set of records.
type Bounds struct {
	MinLat float64
	MinLon float64
	MaxLat float64
	MaxLon float64

	empty bool
}

// ComputeBounds returns the bounding region of the records' coordinates.
// The result is empty when records is empty.
func ComputeBounds(records []types.PropertyRecord) Bounds {
	b := geom.NewBounds(geom.XY)
	for _, r := range records {
		b.Extend(geom.NewPointFlat(geom.XY, []float64{r.Longitude, r.Latitude}))
	}
	if len(records) == 0 || b.IsEmpty() {
		return Bounds{empty: true}
	}
	return Bounds{
		MinLat: b.Min(1),
		MinLon: b.Min(0),
		MaxLat: b.Max(1),
		MaxLon: b.Max(0),
	}
}

// Empty reports whether the region covers no points.
func (b Bounds) Empty() bool { return b.empty }

// Contains reports whether (lat, lon) lies inside the region, edges included.
func (b Bounds) Contains(lat, lon float64) bool {
	if b.empty {
		return false
	}
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// Corners returns [[south, west], [north, east]], the shape Leaflet's
// fitBounds expects.
func (b Bounds) Corners() [2][2]float64 {
	return [2][2]float64{{b.MinLat, b.MinLon}, {b.MaxLat, b.MaxLon}}
}

// Center returns the midpoint of the region.
func (b Bounds) Center() (lat, lon float64) {
	return (b.MinLat + b.MaxLat) / 2, (b.MinLon + b.MaxLon) / 2
}
