package mapdoc

// TileLayer is a base map tile source selectable from the layer control.
type TileLayer struct {
	Name        string `json:"name" mapstructure:"name"`
	URL         string `json:"url" mapstructure:"url"`
	Attribution string `json:"attribution" mapstructure:"attribution"`
	MaxZoom     int    `json:"maxZoom" mapstructure:"max_zoom"`
}

// Assets are the externally hosted stylesheets and scripts the page loads.
type Assets struct {
	Stylesheets []string `mapstructure:"stylesheets"`
	Scripts     []string `mapstructure:"scripts"`
}

// Options control the page scaffolding around the markers.
type Options struct {
	Title      string      `mapstructure:"title"`
	Header     string      `mapstructure:"header"`
	BaseLayers []TileLayer `mapstructure:"base_layers"`
	Assets     Assets      `mapstructure:"assets"`

	// FitPadding is the pixel margin used when fitting the view to the records.
	FitPadding int `mapstructure:"fit_padding"`

	// DefaultCenter and DefaultZoom are used when there is nothing to fit.
	DefaultCenter [2]float64 `mapstructure:"default_center"`
	DefaultZoom   int        `mapstructure:"default_zoom"`

	DisableClusteringAtZoom int    `mapstructure:"disable_clustering_at_zoom"`
	PopupMaxWidth           int    `mapstructure:"popup_max_width"`
	DefaultIcon             string `mapstructure:"default_icon"`
}

const (
	leafletCSS       = "https://cdn.jsdelivr.net/npm/leaflet@1.9.4/dist/leaflet.css"
	leafletJS        = "https://cdn.jsdelivr.net/npm/leaflet@1.9.4/dist/leaflet.js"
	awesomeCSS       = "https://cdnjs.cloudflare.com/ajax/libs/Leaflet.awesome-markers/2.0.4/leaflet.awesome-markers.css"
	awesomeJS        = "https://cdnjs.cloudflare.com/ajax/libs/Leaflet.awesome-markers/2.0.4/leaflet.awesome-markers.js"
	clusterCSS       = "https://cdnjs.cloudflare.com/ajax/libs/leaflet.markercluster/1.5.3/MarkerCluster.css"
	clusterDefaultCS = "https://cdnjs.cloudflare.com/ajax/libs/leaflet.markercluster/1.5.3/MarkerCluster.Default.css"
	clusterJS        = "https://cdnjs.cloudflare.com/ajax/libs/leaflet.markercluster/1.5.3/leaflet.markercluster.js"
	fontAwesomeCSS   = "https://cdn.jsdelivr.net/npm/@fortawesome/fontawesome-free@6.5.2/css/all.min.css"
)

// DefaultOptions returns the stock Spotswood page settings.
func DefaultOptions() Options {
	return Options{
		Title:  "Spotswood Historic Homes",
		Header: "Spotswood Historic Homes",
		BaseLayers: []TileLayer{{
			Name:        "OpenStreetMap",
			URL:         "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
			Attribution: `Data &copy; <a href="https://openstreetmap.org">OpenStreetMap</a> contributors`,
			MaxZoom:     19,
		}},
		Assets: Assets{
			Stylesheets: []string{leafletCSS, awesomeCSS, clusterCSS, clusterDefaultCS, fontAwesomeCSS},
			Scripts:     []string{leafletJS, awesomeJS, clusterJS},
		},
		FitPadding:              30,
		DefaultCenter:           [2]float64{40.3843, -74.4013},
		DefaultZoom:             13,
		DisableClusteringAtZoom: 19,
		PopupMaxWidth:           320,
		DefaultIcon:             "landmark",
	}
}

// WithDefaults fills every zero-valued field from DefaultOptions.
func (o Options) WithDefaults() Options {
	d := DefaultOptions()
	if o.Title == "" {
		o.Title = d.Title
	}
	if o.Header == "" {
		o.Header = o.Title
	}
	if len(o.BaseLayers) == 0 {
		o.BaseLayers = d.BaseLayers
	}
	if len(o.Assets.Stylesheets) == 0 {
		o.Assets.Stylesheets = d.Assets.Stylesheets
	}
	if len(o.Assets.Scripts) == 0 {
		o.Assets.Scripts = d.Assets.Scripts
	}
	if o.FitPadding == 0 {
		o.FitPadding = d.FitPadding
	}
	if o.DefaultCenter == [2]float64{} {
		o.DefaultCenter = d.DefaultCenter
	}
	if o.DefaultZoom == 0 {
		o.DefaultZoom = d.DefaultZoom
	}
	if o.DisableClusteringAtZoom == 0 {
		o.DisableClusteringAtZoom = d.DisableClusteringAtZoom
	}
	if o.PopupMaxWidth == 0 {
		o.PopupMaxWidth = d.PopupMaxWidth
	}
	if o.DefaultIcon == "" {
		o.DefaultIcon = d.DefaultIcon
	}
	return o
}
