package engine

import (
	"gonum.org/v1/gonum/stat"

	"github.com/corpatlas-org/corpatlas/dataset"
)

// ============================================================================
// MAP DATA — Scatter-layer points with a mean-centered viewport
// ============================================================================

// defaultZoom matches a whole-world initial view.
const defaultZoom = 1.5

// MapPoints returns one point per company that has both coordinates and a
// present market value, plus a viewport centered on the mean coordinate.
// Rows missing any of those cells are dropped, not zero-filled — a zero
// coordinate is a real place in the Gulf of Guinea.
func MapPoints(ds *dataset.Dataset) *MapData {
	points := make([]MapPoint, 0, ds.Len())
	lats := make([]float64, 0, ds.Len())
	lons := make([]float64, 0, ds.Len())

	for i := 0; i < ds.Len(); i++ {
		r := ds.At(i)
		if r.Company == "" || !r.HasCoordinates() || !r.MarketValue.Valid {
			continue
		}
		points = append(points, MapPoint{
			Company:     r.Company,
			Latitude:    r.Latitude.Value,
			Longitude:   r.Longitude.Value,
			MarketValue: r.MarketValue.Value,
		})
		lats = append(lats, r.Latitude.Value)
		lons = append(lons, r.Longitude.Value)
	}

	md := &MapData{Points: points, Viewport: Viewport{Zoom: defaultZoom}}
	if len(points) > 0 {
		md.Viewport.Latitude = stat.Mean(lats, nil)
		md.Viewport.Longitude = stat.Mean(lons, nil)
	}
	return md
}
