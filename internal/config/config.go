package config

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"historicmap/internal/dataset"
	"historicmap/internal/mapdoc"
)

// Config holds the full application configuration.
type Config struct {
	Source  SourceConfig   `yaml:"source" mapstructure:"source"`
	Output  OutputConfig   `yaml:"output" mapstructure:"output"`
	Page    mapdoc.Options `yaml:"page" mapstructure:"page"`
	Preview PreviewConfig  `yaml:"preview" mapstructure:"preview"`
	Oracle  OracleConfig   `yaml:"oracle" mapstructure:"oracle"`
	Log     LogConfig      `yaml:"log" mapstructure:"log"`
}

// SourceConfig selects where records come from.
type SourceConfig struct {
	Dataset   string           `yaml:"dataset" mapstructure:"dataset"`
	File      string           `yaml:"file" mapstructure:"file"`
	Shapefile string           `yaml:"shapefile" mapstructure:"shapefile"`
	Fields    dataset.FieldMap `yaml:"fields" mapstructure:"fields"`
	Oracle    bool             `yaml:"oracle" mapstructure:"oracle"`
	Decades   bool             `yaml:"decades" mapstructure:"decades"`
}

// OutputConfig configures where generated files go.
type OutputConfig struct {
	Path    string `yaml:"path" mapstructure:"path"`
	GeoJSON string `yaml:"geojson" mapstructure:"geojson"`
}

// PreviewConfig configures the preview server.
type PreviewConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// OracleConfig names the tables read by the Oracle source. Connection
// credentials come from the DB_* environment variables.
type OracleConfig struct {
	RecordsTable string `yaml:"records_table" mapstructure:"records_table"`
	ErasTable    string `yaml:"eras_table" mapstructure:"eras_table"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("HISTORICMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	fm := dataset.DefaultFieldMap()
	v.SetDefault("source.dataset", "spotswood")
	v.SetDefault("source.fields.title", fm.Title)
	v.SetDefault("source.fields.year", fm.Year)
	v.SetDefault("source.fields.era", fm.Era)
	v.SetDefault("source.fields.description", fm.Description)
	v.SetDefault("source.fields.image", fm.Image)
	v.SetDefault("source.fields.icon", fm.Icon)
	v.SetDefault("source.fields.color", fm.Color)
	v.SetDefault("output.path", "index.html")
	v.SetDefault("preview.port", 8080)
	v.SetDefault("oracle.records_table", "HISTORIC_PROPERTIES")
	v.SetDefault("oracle.eras_table", "HISTORIC_ERAS")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "auto")

	d := mapdoc.DefaultOptions()
	v.SetDefault("page.fit_padding", d.FitPadding)
	v.SetDefault("page.default_zoom", d.DefaultZoom)
	v.SetDefault("page.disable_clustering_at_zoom", d.DisableClusteringAtZoom)
	v.SetDefault("page.popup_max_width", d.PopupMaxWidth)
	v.SetDefault("page.default_icon", d.DefaultIcon)

	// Keys without defaults are unknown to AutomaticEnv until bound.
	for _, key := range []string{"source.file", "source.shapefile", "output.geojson", "page.title", "page.header"} {
		if err := v.BindEnv(key); err != nil {
			return nil, eris.Wrapf(err, "config: bind env %s", key)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger. Format "auto" picks the
// console encoder when stderr is a terminal and JSON otherwise.
func InitLogger(cfg LogConfig) error {
	format := cfg.Format
	if format == "auto" || format == "" {
		format = "json"
		if term.IsTerminal(int(os.Stderr.Fd())) {
			format = "console"
		}
	}

	var zapCfg zap.Config
	if format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
