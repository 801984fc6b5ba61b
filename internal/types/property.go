package types

import (
	"strings"

	"github.com/rotisserie/eris"
)

// PropertyRecord is one historic property placed on the map.
type PropertyRecord struct {
	Latitude    float64 `yaml:"lat" json:"lat"`
	Longitude   float64 `yaml:"lon" json:"lon"`
	Title       string  `yaml:"title" json:"title"`
	Year        string  `yaml:"year,omitempty" json:"year,omitempty"`
	Era         string  `yaml:"era" json:"era"`
	Description string  `yaml:"description,omitempty" json:"description,omitempty"`
	Image       string  `yaml:"image,omitempty" json:"image,omitempty"`
	Icon        string  `yaml:"icon,omitempty" json:"icon,omitempty"`
	MarkerColor string  `yaml:"marker_color,omitempty" json:"marker_color,omitempty"`
}

// EraStyle is the display style for one era bucket.
type EraStyle struct {
	Key   string `yaml:"key" json:"key"`
	Color string `yaml:"color" json:"color"`
	Label string `yaml:"label" json:"label"`
}

// FallbackStyle is applied to records whose era has no style.
var FallbackStyle = EraStyle{Color: "cadetblue", Label: "Other"}

// EraStyles is an ordered set of era styles. Order decides layer order in the
// generated page.
type EraStyles []EraStyle

// Lookup returns the style registered for key.
func (s EraStyles) Lookup(key string) (EraStyle, bool) {
	for _, st := range s {
		if st.Key == key {
			return st, true
		}
	}
	return EraStyle{}, false
}

// Resolve returns the style for key, or FallbackStyle when key is unknown.
// A known style with a blank color borrows the fallback color.
func (s EraStyles) Resolve(key string) EraStyle {
	st, ok := s.Lookup(key)
	if !ok {
		return FallbackStyle
	}
	if strings.TrimSpace(st.Color) == "" {
		st.Color = FallbackStyle.Color
	}
	if st.Label == "" {
		st.Label = st.Key
	}
	return st
}

// Keys returns the era keys in order.
func (s EraStyles) Keys() []string {
	keys := make([]string, 0, len(s))
	for _, st := range s {
		keys = append(keys, st.Key)
	}
	return keys
}

// Validate reports empty or duplicate keys.
func (s EraStyles) Validate() error {
	seen := make(map[string]bool, len(s))
	for i, st := range s {
		if strings.TrimSpace(st.Key) == "" {
			return eris.Errorf("types: era style %d has an empty key", i)
		}
		if seen[st.Key] {
			return eris.Errorf("types: duplicate era style %q", st.Key)
		}
		seen[st.Key] = true
	}
	return nil
}

// ValidCoordinates reports whether the record's lat/lon are in range.
func (r PropertyRecord) ValidCoordinates() bool {
	return r.Latitude >= -90 && r.Latitude <= 90 &&
		r.Longitude >= -180 && r.Longitude <= 180
}
