package main

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"historicmap/internal/dataset"
	"historicmap/internal/mapdoc"
	"historicmap/internal/types"
)

var listInteractive bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the records that would be placed on the map",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(cmd.Context(), sourceConfig(cmd))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		lines := recordLines(ds)
		for _, l := range lines {
			fmt.Fprintln(out, l)
		}
		if !listInteractive || len(lines) == 0 {
			return nil
		}

		fmt.Fprintln(out, "Use ↑/↓ and Enter for details, Esc to exit.")
		interactiveSelect(lines, func(i int) {
			renderRecord(out, ds.Records[i], ds.Styles)
		})
		return nil
	},
}

var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "List the builtin datasets",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range dataset.BuiltinNames() {
			ds, err := dataset.Builtin(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-16s %3d records  eras: %s\n",
				name, len(ds.Records), strings.Join(ds.Styles.Keys(), ", "))
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVarP(&listInteractive, "interactive", "i", false, "pick a record to view its details")
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(datasetsCmd)
}

// recordLines formats one summary line per record, with the distance from the
// centre of the map's bounding region.
func recordLines(ds *dataset.Dataset) []string {
	cLat, cLon := mapdoc.ComputeBounds(ds.Records).Center()
	lines := make([]string, 0, len(ds.Records))
	for _, r := range ds.Records {
		label := ds.Styles.Resolve(r.Era).Label
		lines = append(lines, fmt.Sprintf("%-40s | %-12s | %9.5f, %10.5f | %5.2f mi",
			r.Title, label, r.Latitude, r.Longitude, distanceMiles(cLat, cLon, r.Latitude, r.Longitude)))
	}
	return lines
}

// renderRecord prints a record roughly as its popup reads.
func renderRecord(w io.Writer, r types.PropertyRecord, styles types.EraStyles) {
	st := styles.Resolve(r.Era)
	fmt.Fprintln(w, strings.Repeat("-", 80))
	fmt.Fprintf(w, "Title             : %s\n", r.Title)
	if r.Year != "" {
		fmt.Fprintf(w, "Built             : %s\n", r.Year)
	}
	fmt.Fprintf(w, "Era               : %s (%s)\n", st.Label, st.Color)
	fmt.Fprintf(w, "Location          : %.6f, %.6f\n", r.Latitude, r.Longitude)
	if r.Description != "" {
		fmt.Fprintf(w, "Description       : %s\n", r.Description)
	}
	if r.Image != "" {
		fmt.Fprintf(w, "Image             : %s\n", r.Image)
	}
	fmt.Fprintf(w, "OSM URL           : https://www.openstreetmap.org/?mlat=%.6f&mlon=%.6f#map=18/%.6f/%.6f\n",
		r.Latitude, r.Longitude, r.Latitude, r.Longitude)
	fmt.Fprintln(w, strings.Repeat("-", 80))
}

func distanceMiles(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusMiles = 3958.8
	toRad := func(d float64) float64 { return d * math.Pi / 180 }
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMiles * c
}
