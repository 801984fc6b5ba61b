package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"historicmap/internal/config"
	"historicmap/internal/database"
	"historicmap/internal/dataset"
	"historicmap/internal/mapdoc"
)

var cfg *config.Config

// Source flags shared by every command that reads records.
var (
	flagDataset   string
	flagFile      string
	flagShapefile string
	flagOracle    bool
	flagDecades   bool
	flagTitle     string
)

var rootCmd = &cobra.Command{
	Use:   "historicmap",
	Short: "Generate an interactive map page of historic properties",
	Long:  "Loads historic property records, groups them by era, and renders a self-contained Leaflet page with clustered, colour-coded markers.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		enableVT()

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagDataset, "dataset", "", "builtin dataset name (default from config)")
	pf.StringVar(&flagFile, "file", "", "YAML dataset file")
	pf.StringVar(&flagShapefile, "shapefile", "", "point shapefile of records")
	pf.BoolVar(&flagOracle, "oracle", false, "read records and eras from Oracle")
	pf.BoolVar(&flagDecades, "decades", false, "regroup records into decade eras")
	pf.StringVar(&flagTitle, "title", "", "page title (default from config or dataset)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// sourceConfig overlays explicitly set flags on the configured source.
func sourceConfig(cmd *cobra.Command) config.SourceConfig {
	src := cfg.Source
	flags := cmd.Flags()
	if flags.Changed("dataset") {
		src.Dataset = flagDataset
	}
	if flags.Changed("file") {
		src.File = flagFile
	}
	if flags.Changed("shapefile") {
		src.Shapefile = flagShapefile
	}
	if flags.Changed("oracle") {
		src.Oracle = flagOracle
	}
	if flags.Changed("decades") {
		src.Decades = flagDecades
	}
	return src
}

// loadDataset reads records from the first configured source: Oracle,
// shapefile, YAML file, then the builtin dataset.
func loadDataset(ctx context.Context, src config.SourceConfig) (*dataset.Dataset, error) {
	var (
		ds  *dataset.Dataset
		err error
	)
	switch {
	case src.Oracle:
		ds, err = loadOracle(ctx)
	case src.Shapefile != "":
		ds, err = dataset.LoadShapefile(src.Shapefile, src.Fields)
	case src.File != "":
		ds, err = dataset.Load(src.File)
	default:
		ds, err = dataset.Builtin(src.Dataset)
	}
	if err != nil {
		return nil, err
	}

	if src.Decades {
		ds = dataset.RegroupByDecade(ds)
	}

	zap.L().Debug("dataset loaded",
		zap.String("dataset", ds.Name),
		zap.Int("records", len(ds.Records)),
		zap.Strings("eras", ds.Styles.Keys()),
	)
	return ds, nil
}

func loadOracle(ctx context.Context) (*dataset.Dataset, error) {
	dbCfg := database.LoadDatabaseConfig(cfg.Oracle.RecordsTable, cfg.Oracle.ErasTable)
	db, err := database.NewDatabase(ctx, dbCfg)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	styles, err := db.QueryEraStyles(ctx)
	if err != nil {
		return nil, err
	}
	records, err := db.QueryRecords(ctx)
	if err != nil {
		return nil, err
	}
	ds := &dataset.Dataset{Name: "oracle", Styles: styles, Records: records}
	for _, w := range ds.Check() {
		zap.L().Warn("dataset: suspicious input", zap.String("dataset", ds.Name), zap.String("problem", w))
	}
	return ds, nil
}

// pageOptions resolves the page title: --title, then config, then the
// dataset's own title.
func pageOptions(cmd *cobra.Command, ds *dataset.Dataset) mapdoc.Options {
	opts := cfg.Page
	if cmd.Flags().Changed("title") {
		opts.Title = flagTitle
		opts.Header = ""
	}
	if opts.Title == "" {
		opts.Title = ds.Title
	}
	return opts.WithDefaults()
}
