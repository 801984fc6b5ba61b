// Package mapdoc renders historic property records into a self-contained
// Leaflet map page.
//
// Generation is a pure function of its inputs: the same records, styles and
// options always produce the same bytes.
package mapdoc

import (
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"historicmap/internal/types"
)

type pageData struct {
	Options
	Legend    []LegendEntry
	Markers   []Marker
	HasBounds bool
	Corners   [2][2]float64
}

// Generate builds the HTML document for records styled by styles.
//
// Each era in styles becomes a clustered, toggleable layer. Records whose era
// is missing from styles are drawn with types.FallbackStyle directly on the
// map. The view is fitted to the records' bounding region, or to the default
// center and zoom when there are no records. Inputs are not validated.
func Generate(records []types.PropertyRecord, styles types.EraStyles, opts Options) (string, error) {
	opts = opts.WithDefaults()

	markers, err := BuildMarkers(records, styles, opts.DefaultIcon)
	if err != nil {
		return "", eris.Wrap(err, "mapdoc: render popups")
	}
	legend, err := Legend(styles)
	if err != nil {
		return "", eris.Wrap(err, "mapdoc: render legend")
	}

	unstyled := 0
	for _, m := range markers {
		if m.Layer < 0 {
			unstyled++
		}
	}
	if unstyled > 0 {
		zap.L().Debug("mapdoc: records drawn with fallback style",
			zap.Int("count", unstyled),
			zap.String("color", types.FallbackStyle.Color),
		)
	}

	bounds := ComputeBounds(records)
	data := pageData{
		Options:   opts,
		Legend:    legend,
		Markers:   markers,
		HasBounds: !bounds.Empty(),
		Corners:   bounds.Corners(),
	}

	var sb strings.Builder
	if err := pageTmpl.Execute(&sb, data); err != nil {
		return "", eris.Wrap(err, "mapdoc: execute page template")
	}
	return sb.String(), nil
}
