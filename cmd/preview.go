package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"historicmap/internal/dataset"
	"historicmap/internal/mapdoc"
)

var previewPort int

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Serve the generated map page locally",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		ds, err := loadDataset(ctx, sourceConfig(cmd))
		if err != nil {
			return err
		}

		port := previewPort
		if port == 0 {
			port = cfg.Preview.Port
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           newPreviewHandler(ds, pageOptions(cmd, ds)),
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down preview server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("serving map preview",
			zap.String("url", fmt.Sprintf("http://localhost:%d/", port)),
			zap.Int("records", len(ds.Records)),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "preview: listen")
		}
		return nil
	},
}

func init() {
	previewCmd.Flags().IntVar(&previewPort, "port", 0, "preview port (default from config)")
	rootCmd.AddCommand(previewCmd)
}

// newPreviewHandler serves the page at / and the records as GeoJSON. Both are
// regenerated per request from the immutable dataset.
func newPreviewHandler(ds *dataset.Dataset, opts mapdoc.Options) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":  "ok",
			"dataset": ds.Name,
			"records": len(ds.Records),
		})
	})

	mux.HandleFunc("GET /data.geojson", func(w http.ResponseWriter, r *http.Request) {
		data, err := mapdoc.FeatureCollection(ds.Records, ds.Styles)
		if err != nil {
			zap.L().Error("preview: geojson failed", zap.Error(err))
			http.Error(w, "geojson encoding failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/geo+json")
		_, _ = w.Write(data)
	})

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		doc, err := mapdoc.Generate(ds.Records, ds.Styles, opts)
		if err != nil {
			zap.L().Error("preview: generate failed", zap.Error(err))
			http.Error(w, "page generation failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(doc))
	})

	return mux
}
