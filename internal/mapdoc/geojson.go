package mapdoc

import (
	"encoding/json"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"historicmap/internal/types"
)

// FeatureCollection encodes records as a GeoJSON FeatureCollection of points,
// with the resolved era style carried in each feature's properties.
func FeatureCollection(records []types.PropertyRecord, styles types.EraStyles) ([]byte, error) {
	fc := geojson.FeatureCollection{
		Features: make([]*geojson.Feature, 0, len(records)),
	}
	for i, r := range records {
		st := styles.Resolve(r.Era)
		props := map[string]interface{}{
			"title":     r.Title,
			"era":       r.Era,
			"era_label": st.Label,
			"color":     st.Color,
		}
		if r.Year != "" {
			props["year"] = r.Year
		}
		if r.Icon != "" {
			props["icon"] = r.Icon
		}
		if r.Description != "" {
			props["description"] = r.Description
		}
		if r.Image != "" {
			props["image"] = r.Image
		}
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:         strconv.Itoa(i + 1),
			Geometry:   geom.NewPointFlat(geom.XY, []float64{r.Longitude, r.Latitude}),
			Properties: props,
		})
	}

	data, err := json.Marshal(&fc)
	if err != nil {
		return nil, eris.Wrap(err, "mapdoc: encode geojson")
	}
	return data, nil
}
