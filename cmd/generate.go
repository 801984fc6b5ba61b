package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"historicmap/internal/dataset"
	"historicmap/internal/mapdoc"
)

var (
	generateOut     string
	generateGeoJSON string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write the map page (and optionally a GeoJSON sidecar)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(cmd.Context(), sourceConfig(cmd))
		if err != nil {
			return err
		}

		out := cfg.Output.Path
		if cmd.Flags().Changed("out") {
			out = generateOut
		}
		geo := cfg.Output.GeoJSON
		if cmd.Flags().Changed("geojson") {
			geo = generateGeoJSON
		}

		return writeOutputs(cmd.OutOrStdout(), ds, pageOptions(cmd, ds), out, geo)
	},
}

func init() {
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "output HTML path, or - for stdout (default from config)")
	generateCmd.Flags().StringVar(&generateGeoJSON, "geojson", "", "also write records as GeoJSON to this path")
	rootCmd.AddCommand(generateCmd)
}

// writeOutputs renders ds and writes the page to out ("-" means stdout) and,
// when geo is set, the GeoJSON sidecar.
func writeOutputs(stdout io.Writer, ds *dataset.Dataset, opts mapdoc.Options, out, geo string) error {
	doc, err := mapdoc.Generate(ds.Records, ds.Styles, opts)
	if err != nil {
		return err
	}

	if out == "-" {
		if _, err := io.WriteString(stdout, doc); err != nil {
			return eris.Wrap(err, "generate: write stdout")
		}
	} else {
		if err := writeFile(out, []byte(doc)); err != nil {
			return err
		}
		abs, _ := filepath.Abs(out)
		zap.L().Info("map saved",
			zap.String("path", abs),
			zap.Int("records", len(ds.Records)),
			zap.Int("eras", len(ds.Styles)),
		)
	}

	if geo != "" {
		data, err := mapdoc.FeatureCollection(ds.Records, ds.Styles)
		if err != nil {
			return err
		}
		if err := writeFile(geo, data); err != nil {
			return err
		}
		zap.L().Info("geojson saved", zap.String("path", geo))
	}
	return nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return eris.Wrapf(err, "generate: create %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "generate: write %s", path)
	}
	return nil
}
