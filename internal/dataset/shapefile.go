package dataset

import (
	"path/filepath"
	"strings"

	shp "github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"historicmap/internal/types"
)

// FieldMap names the DBF attribute columns holding each record field.
// Matching is case-insensitive; a blank name leaves the field empty.
type FieldMap struct {
	Title       string `mapstructure:"title"`
	Year        string `mapstructure:"year"`
	Era         string `mapstructure:"era"`
	Description string `mapstructure:"description"`
	Image       string `mapstructure:"image"`
	Icon        string `mapstructure:"icon"`
	Color       string `mapstructure:"color"`
}

// DefaultFieldMap fits DBF's ten character column names.
func DefaultFieldMap() FieldMap {
	return FieldMap{
		Title:       "TITLE",
		Year:        "YEAR",
		Era:         "ERA",
		Description: "DESCR",
		Image:       "IMAGE",
		Icon:        "ICON",
		Color:       "COLOR",
	}
}

// missing returns the mapped column names absent from the attribute table.
func (fm FieldMap) missing(fieldIdx map[string]int) []string {
	var out []string
	for _, name := range []string{fm.Title, fm.Year, fm.Era, fm.Description, fm.Image, fm.Icon, fm.Color} {
		if name == "" {
			continue
		}
		if _, ok := fieldIdx[strings.ToUpper(name)]; !ok {
			out = append(out, name)
		}
	}
	return out
}

// LoadShapefile reads a point shapefile into a dataset. Coordinates are taken
// as WGS-84 lon/lat. Styles are derived from the distinct eras in file order.
func LoadShapefile(path string, fm FieldMap) (*Dataset, error) {
	r, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: open shapefile %s", path)
	}
	defer func() { _ = r.Close() }()

	fields := r.Fields()
	if len(fields) == 0 {
		return nil, eris.Errorf("dataset: shapefile %s has no attribute table", path)
	}
	fieldIdx := make(map[string]int, len(fields))
	for i, f := range fields {
		name := strings.TrimRight(f.String(), "\x00")
		fieldIdx[strings.ToUpper(name)] = i
	}
	if missing := fm.missing(fieldIdx); len(missing) > 0 {
		zap.L().Warn("dataset: shapefile columns not found",
			zap.String("path", path),
			zap.Strings("columns", missing),
		)
	}
	attr := func(row int, name string) string {
		if name == "" {
			return ""
		}
		idx, ok := fieldIdx[strings.ToUpper(name)]
		if !ok {
			return ""
		}
		return strings.TrimSpace(strings.TrimRight(r.ReadAttribute(row, idx), "\x00"))
	}

	var records []types.PropertyRecord
	var skipped int
	for r.Next() {
		row, shape := r.Shape()
		pt, ok := shape.(*shp.Point)
		if !ok {
			skipped++
			continue
		}
		records = append(records, types.PropertyRecord{
			Latitude:    pt.Y,
			Longitude:   pt.X,
			Title:       attr(row, fm.Title),
			Year:        attr(row, fm.Year),
			Era:         attr(row, fm.Era),
			Description: attr(row, fm.Description),
			Image:       attr(row, fm.Image),
			Icon:        attr(row, fm.Icon),
			MarkerColor: attr(row, fm.Color),
		})
	}

	if skipped > 0 {
		zap.L().Debug("dataset: skipped non-point shapes",
			zap.String("path", path),
			zap.Int("skipped", skipped),
		)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return &Dataset{
		Name:    name,
		Styles:  StylesFromEras(records),
		Records: records,
	}, nil
}
