package mapdoc

import (
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"historicmap/internal/types"
)

func fourEras() types.EraStyles {
	return types.EraStyles{
		{Key: "1700s", Color: "orange", Label: "1700s"},
		{Key: "1800s", Color: "red", Label: "1800s"},
		{Key: "1900-1919", Color: "green", Label: "1900-1919"},
		{Key: "1920-1939", Color: "blue", Label: "1920-1939"},
	}
}

func sampleRecords() []types.PropertyRecord {
	return []types.PropertyRecord{
		{Latitude: 40.3913, Longitude: -74.3891, Title: "St. Peter's Church (1899)", Era: "1700s", Icon: "church",
			Description: "Rebuilt after a fire.", Image: "https://example.com/stpeters.jpeg"},
		{Latitude: 40.3740, Longitude: -74.4163, Title: "Ten Eyks Forge (1700s)", Era: "1700s", Icon: "industry"},
		{Latitude: 40.3545, Longitude: -74.4418, Title: "15 Stockton Ave (1835)", Era: "1800s", Icon: "home",
			Description: "Marryott House"},
		{Latitude: 40.3969, Longitude: -74.3843, Title: "321 Main St. (1918)", Era: "1900-1919"},
		{Latitude: 40.3897, Longitude: -74.3884, Title: "79 Devoe Ave (1929)", Era: "1920-1939", Icon: "home"},
	}
}

func TestGenerate_OneMarkerPerRecord(t *testing.T) {
	records := sampleRecords()
	doc, err := Generate(records, fourEras(), DefaultOptions())
	require.NoError(t, err)

	// One call per record plus the function definition.
	assert.Equal(t, len(records)+1, strings.Count(doc, "placeMarker("))
	assert.Equal(t, len(fourEras())+1, strings.Count(doc, "addEraLayer("))
	assert.True(t, strings.HasPrefix(doc, "<!DOCTYPE html>"))
	assert.Contains(t, doc, "</html>")
}

func TestGenerate_MarkerColorsFollowEra(t *testing.T) {
	records := sampleRecords()
	styles := fourEras()

	markers, err := BuildMarkers(records, styles, "landmark")
	require.NoError(t, err)
	require.Len(t, markers, len(records))

	for i, m := range markers {
		want, ok := styles.Lookup(records[i].Era)
		require.True(t, ok)
		assert.Equal(t, want.Color, m.Color, records[i].Title)
		assert.Equal(t, styles.Keys()[m.Layer], records[i].Era)
	}
}

func TestGenerate_SingleRecordExample(t *testing.T) {
	records := []types.PropertyRecord{{Latitude: 40.39, Longitude: -74.39, Title: "26 Lakeview Dr (1869)", Era: "1800s"}}
	styles := types.EraStyles{{Key: "1800s", Color: "red", Label: "1800s"}}

	doc, err := Generate(records, styles, DefaultOptions())
	require.NoError(t, err)

	assert.Contains(t, doc, `"lat":40.39,"lon":-74.39,"color":"red"`)
	assert.Contains(t, doc, `"key":"1800s","label":"1800s","color":"red"`)
	assert.Contains(t, doc, `map.fitBounds([[40.39,-74.39],[40.39,-74.39]], { padding: [`)
}

func TestGenerate_UnknownEraFallsBack(t *testing.T) {
	records := []types.PropertyRecord{
		{Latitude: 40.38, Longitude: -74.40, Title: "Mystery House", Era: "1600s"},
		{Latitude: 40.37, Longitude: -74.41, Title: "No Era"},
	}

	markers, err := BuildMarkers(records, fourEras(), "landmark")
	require.NoError(t, err)
	for _, m := range markers {
		assert.Equal(t, types.FallbackStyle.Color, m.Color)
		assert.Equal(t, -1, m.Layer)
		assert.Equal(t, "landmark", m.Icon)
	}
	assert.Contains(t, markers[0].Popup, "Era: 1600s")
	assert.Contains(t, markers[1].Popup, "Era: Other")

	doc, err := Generate(records, fourEras(), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(doc, `"color":"cadetblue"`))
}

func TestGenerate_EmptyStyles(t *testing.T) {
	records := sampleRecords()
	doc, err := Generate(records, nil, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(doc, "addEraLayer("))
	assert.Equal(t, len(records), strings.Count(doc, `"color":"cadetblue"`))
	assert.Equal(t, len(records), strings.Count(doc, `"layer":-1`))
	assert.Contains(t, doc, "L.control.layers(baseLayers, overlays")
}

func TestGenerate_NoRecordsUsesDefaultView(t *testing.T) {
	doc, err := Generate(nil, fourEras(), DefaultOptions())
	require.NoError(t, err)

	assert.Contains(t, doc, "map.setView([40.3843,-74.4013],")
	assert.NotContains(t, doc, "map.fitBounds(")
	assert.Equal(t, 1, strings.Count(doc, "placeMarker("))
}

func TestGenerate_Deterministic(t *testing.T) {
	first, err := Generate(sampleRecords(), fourEras(), DefaultOptions())
	require.NoError(t, err)
	second, err := Generate(sampleRecords(), fourEras(), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerate_ConcurrentCallsAgree(t *testing.T) {
	want, err := Generate(sampleRecords(), fourEras(), DefaultOptions())
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = Generate(sampleRecords(), fourEras(), DefaultOptions())
		}(i)
	}
	wg.Wait()
	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestGenerate_EscapesRecordText(t *testing.T) {
	records := []types.PropertyRecord{{
		Latitude: 40.38, Longitude: -74.40, Era: "1800s",
		Title:       `Smith & Sons`,
		Description: `<script>alert(1)</script>`,
	}}

	markers, err := BuildMarkers(records, fourEras(), "landmark")
	require.NoError(t, err)
	assert.Contains(t, markers[0].Popup, "&lt;script&gt;alert(1)&lt;/script&gt;")
	assert.Contains(t, markers[0].Popup, "Smith &amp; Sons")

	doc, err := Generate(records, fourEras(), DefaultOptions())
	require.NoError(t, err)
	assert.NotContains(t, doc, "<script>alert(1)")
}

func TestGenerate_PopupOptionalParts(t *testing.T) {
	markers, err := BuildMarkers(sampleRecords(), fourEras(), "landmark")
	require.NoError(t, err)

	withAll := markers[0].Popup
	assert.Contains(t, withAll, `<h3>St. Peter&#39;s Church (1899)</h3>`)
	assert.Contains(t, withAll, `<p class="popup-description">Rebuilt after a fire.</p>`)
	assert.Contains(t, withAll, `src="https://example.com/stpeters.jpeg"`)

	bare := markers[1].Popup
	assert.NotContains(t, bare, "popup-description")
	assert.NotContains(t, bare, "popup-image")
}

func TestGenerate_OptionsApplied(t *testing.T) {
	opts := DefaultOptions()
	opts.Title = "Helmetta Landmarks"
	opts.Header = ""
	opts.BaseLayers = append(opts.BaseLayers, TileLayer{
		Name: "Topo", URL: "https://tile.opentopomap.org/{z}/{x}/{y}.png", MaxZoom: 17,
	})

	doc, err := Generate(sampleRecords(), fourEras(), opts)
	require.NoError(t, err)

	assert.Contains(t, doc, "<title>Helmetta Landmarks</title>")
	assert.Contains(t, doc, `<div class="map-header">Helmetta Landmarks</div>`)
	assert.Equal(t, 3, strings.Count(doc, "addBaseLayer("))
	assert.Contains(t, doc, `"name":"Topo"`)
}

func TestLegend_OrderAndMarkup(t *testing.T) {
	legend, err := Legend(fourEras())
	require.NoError(t, err)
	require.Len(t, legend, 4)

	for i, e := range legend {
		assert.Equal(t, fourEras()[i].Key, e.Key)
	}
	assert.Equal(t, `<span class="era-label" style="color:red; font-weight:600;">1800s</span>`, legend[1].HTML)
}

func TestGenerate_DuplicateEraKeyKeepsOneLayer(t *testing.T) {
	styles := types.EraStyles{
		{Key: "1800s", Color: "red", Label: "1800s"},
		{Key: "1800s", Color: "blue", Label: "Nineteenth"},
		{Key: "1900-1919", Color: "green", Label: "1900-1919"},
	}
	records := []types.PropertyRecord{
		{Latitude: 40.39, Longitude: -74.39, Title: "A", Era: "1800s"},
		{Latitude: 40.38, Longitude: -74.40, Title: "B", Era: "1900-1919"},
	}

	legend, err := Legend(styles)
	require.NoError(t, err)
	require.Len(t, legend, 2)
	assert.Equal(t, "red", legend[0].Color)
	assert.Equal(t, "1900-1919", legend[1].Key)

	doc, err := Generate(records, styles, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(doc, "addEraLayer("))
	assert.Contains(t, doc, `"color":"red","icon":"landmark","layer":0`)
	assert.Contains(t, doc, `"color":"green","icon":"landmark","layer":1`)
}

func TestFeatureCollection(t *testing.T) {
	records := sampleRecords()
	records = append(records, types.PropertyRecord{Latitude: 40.0, Longitude: -74.0, Title: "Unknown", Era: "1600s"})

	data, err := FeatureCollection(records, fourEras())
	require.NoError(t, err)

	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Type        string    `json:"type"`
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]interface{} `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(data, &fc))

	assert.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, len(records))

	first := fc.Features[0]
	assert.Equal(t, "Point", first.Geometry.Type)
	assert.Equal(t, []float64{-74.3891, 40.3913}, first.Geometry.Coordinates)
	assert.Equal(t, "orange", first.Properties["color"])
	assert.Equal(t, "church", first.Properties["icon"])

	last := fc.Features[len(records)-1]
	assert.Equal(t, "cadetblue", last.Properties["color"])
	assert.Equal(t, "Other", last.Properties["era_label"])

	again, err := FeatureCollection(records, fourEras())
	require.NoError(t, err)
	assert.Equal(t, data, again)
}
