package dataset

import (
	"embed"
	"path"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
)

//go:embed data/*.yaml
var builtinFS embed.FS

// BuiltinNames lists the embedded datasets in sorted order.
func BuiltinNames() []string {
	entries, err := builtinFS.ReadDir("data")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".yaml") {
			names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
		}
	}
	sort.Strings(names)
	return names
}

// Builtin returns the embedded dataset with the given name.
func Builtin(name string) (*Dataset, error) {
	data, err := builtinFS.ReadFile(path.Join("data", name+".yaml"))
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: no builtin dataset %q (have %s)", name, strings.Join(BuiltinNames(), ", "))
	}
	ds, err := Parse(data)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: builtin %s", name)
	}
	if ds.Name == "" {
		ds.Name = name
	}
	return ds, nil
}
