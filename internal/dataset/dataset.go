// Package dataset loads historic property records and their era styles from
// YAML files, embedded datasets, and point shapefiles.
package dataset

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"historicmap/internal/types"
)

// Dataset is a named set of records with the era styles that colour them.
type Dataset struct {
	Name    string                 `yaml:"name"`
	Title   string                 `yaml:"title,omitempty"`
	Styles  types.EraStyles        `yaml:"styles"`
	Records []types.PropertyRecord `yaml:"records"`
}

// Load reads a YAML dataset file.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: read %s", path)
	}
	ds, err := Parse(data)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: parse %s", path)
	}
	return ds, nil
}

// Parse decodes a YAML dataset. Problems found by Check are logged, not
// returned; the generator tolerates them.
func Parse(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, eris.Wrap(err, "dataset: unmarshal yaml")
	}
	for _, w := range ds.Check() {
		zap.L().Warn("dataset: suspicious input", zap.String("dataset", ds.Name), zap.String("problem", w))
	}
	return &ds, nil
}

// Check returns human-readable problems with the dataset: bad style keys,
// out-of-range coordinates, and eras with no style.
func (d *Dataset) Check() []string {
	var problems []string
	if err := d.Styles.Validate(); err != nil {
		problems = append(problems, err.Error())
	}
	unstyled := make(map[string]bool)
	for i, r := range d.Records {
		if !r.ValidCoordinates() {
			problems = append(problems, fmt.Sprintf("record %d (%s): coordinates out of range (%v, %v)", i, r.Title, r.Latitude, r.Longitude))
		}
		if _, ok := d.Styles.Lookup(r.Era); !ok && !unstyled[r.Era] {
			unstyled[r.Era] = true
			problems = append(problems, fmt.Sprintf("era %q has no style; fallback applies", r.Era))
		}
	}
	return problems
}

// EraCounts returns the number of records per era key.
func (d *Dataset) EraCounts() map[string]int {
	counts := make(map[string]int)
	for _, r := range d.Records {
		counts[r.Era]++
	}
	return counts
}
