package mapdoc

import (
	"bytes"
	"html/template"
	"strings"

	"historicmap/internal/types"
)

// Marker is the per-record fragment handed to the page script.
type Marker struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Color string  `json:"color"`
	Icon  string  `json:"icon"`
	// Layer indexes the era layer the marker joins, or -1 to sit on the map
	// directly.
	Layer int    `json:"layer"`
	Popup string `json:"popup"`
}

// LegendEntry is one toggleable era layer in the layer control.
type LegendEntry struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Color string `json:"color"`
	HTML  string `json:"html"`
}

var popupTmpl = template.Must(template.New("popup").Parse(`<div class="popup-card">
    <div class="popup-header">
        <h3>{{.Title}}</h3>
        <p class="popup-era">Era: {{.Era}}</p>
    </div>
    {{- if .Description}}
    <p class="popup-description">{{.Description}}</p>
    {{- end}}
    {{- if .Image}}
    <div class="popup-image"><img src="{{.Image}}" alt="{{.Title}}" loading="lazy"></div>
    {{- end}}
</div>`))

var legendTmpl = template.Must(template.New("legend").Parse(
	`<span class="era-label" style="color:{{.Color}}; font-weight:600;">{{.Label}}</span>`))

// BuildMarkers resolves every record's style and renders its popup.
// Records whose era has no style get types.FallbackStyle.
func BuildMarkers(records []types.PropertyRecord, styles types.EraStyles, defaultIcon string) ([]Marker, error) {
	// Layers follow Legend: one per distinct key.
	index := make(map[string]int, len(styles))
	for _, st := range styles {
		if _, dup := index[st.Key]; !dup {
			index[st.Key] = len(index)
		}
	}

	markers := make([]Marker, 0, len(records))
	for _, r := range records {
		st := styles.Resolve(r.Era)
		layer, ok := index[r.Era]
		if !ok {
			layer = -1
		}

		eraLabel := st.Label
		if !ok && strings.TrimSpace(r.Era) != "" {
			eraLabel = r.Era
		}

		popup, err := renderPopup(r, eraLabel)
		if err != nil {
			return nil, err
		}

		icon := strings.TrimSpace(r.Icon)
		if icon == "" {
			icon = defaultIcon
		}

		markers = append(markers, Marker{
			Lat:   r.Latitude,
			Lon:   r.Longitude,
			Color: st.Color,
			Icon:  icon,
			Layer: layer,
			Popup: popup,
		})
	}
	return markers, nil
}

// Legend returns one entry per distinct era key, in style order. A repeated
// key keeps its first style, as in BuildMarkers.
func Legend(styles types.EraStyles) ([]LegendEntry, error) {
	entries := make([]LegendEntry, 0, len(styles))
	seen := make(map[string]bool, len(styles))
	for _, s := range styles {
		if seen[s.Key] {
			continue
		}
		seen[s.Key] = true
		st := styles.Resolve(s.Key)
		var buf bytes.Buffer
		if err := legendTmpl.Execute(&buf, st); err != nil {
			return nil, err
		}
		entries = append(entries, LegendEntry{
			Key:   st.Key,
			Label: st.Label,
			Color: st.Color,
			HTML:  buf.String(),
		})
	}
	return entries, nil
}

func renderPopup(r types.PropertyRecord, eraLabel string) (string, error) {
	var buf bytes.Buffer
	err := popupTmpl.Execute(&buf, struct {
		Title       string
		Era         string
		Description string
		Image       string
	}{
		Title:       r.Title,
		Era:         eraLabel,
		Description: strings.TrimSpace(r.Description),
		Image:       strings.TrimSpace(r.Image),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
