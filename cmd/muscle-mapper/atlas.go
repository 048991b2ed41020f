// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/muscle-mapper/internal/atlas"
	"github.com/pdiddy/muscle-mapper/internal/mapping"
)

var atlasCmd = &cobra.Command{
	Use:   "atlas",
	Short: "Index a mapping for lookups and export (index, lookup, export)",
	Long: `Atlas keeps a local SQLite index joining the extracted shapes with a
validated mapping. Use subcommands to build the index, look muscles up by
shape, label or view, or export every muscle with its geometry.`,
}

// --- index subcommand ---

var atlasIndexCmd = &cobra.Command{
	Use:   "index <mapping-file>",
	Short: "Replace the atlas with the shapes and a mapping",
	Long: `Index extracts the shapes from the source SVG, validates the mapping
against them, and replaces the atlas contents. A mapping with validation
errors is rejected and the atlas is left unchanged.`,
	Args: cobra.ExactArgs(1),
	RunE: runAtlasIndex,
}

func runAtlasIndex(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	log := newLogger(cmd, cfg)

	doc, err := extractDocument(cfg, log)
	if err != nil {
		return err
	}
	m, err := mapping.Load(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if report := mapping.Validate(m, doc.Shapes); !report.Valid() {
		if err := report.Write(out); err != nil {
			return err
		}
		return fmt.Errorf("%s: %d validation error(s), atlas not updated", args[0], len(report.Errors))
	}

	store, err := atlas.NewStore(cfg.Atlas)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Index(context.Background(), doc.Shapes, m)
	if err != nil {
		return err
	}
	log.Info("atlas written to %s", store.Path())
	fmt.Fprintf(out, "indexed shapes: %d, muscles: %d, skipped: %d, unknown refs: %d\n",
		summary.Shapes, summary.Muscles, summary.Skipped, summary.UnknownRefs)
	return nil
}

// --- lookup subcommand ---

var atlasLookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Find muscles by shape ID, label or view",
	Long: `Lookup lists indexed muscles in mapping order. --shape selects muscles
that use a shape, --label matches a case-insensitive substring of the
label, and --view selects one view. Filters combine.`,
	Args: cobra.NoArgs,
	RunE: runAtlasLookup,
}

func runAtlasLookup(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	store, err := atlas.NewStore(cfg.Atlas)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.Lookup(context.Background(), lookupOptsFromFlags(cmd))
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatLookupOutput(cmd, records, jsonOutput)
}

func lookupOptsFromFlags(cmd *cobra.Command) atlas.LookupOptions {
	shapeID, _ := cmd.Flags().GetString("shape")
	label, _ := cmd.Flags().GetString("label")
	view, _ := cmd.Flags().GetString("view")
	limit, _ := cmd.Flags().GetInt("limit")
	return atlas.LookupOptions{ShapeID: shapeID, Label: label, View: view, Limit: limit}
}

func formatLookupOutput(cmd *cobra.Command, records []atlas.MuscleRecord, jsonOutput bool) error {
	out := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if records == nil {
			records = []atlas.MuscleRecord{}
		}
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Fprintln(out, "No muscles found.")
		return nil
	}

	fmt.Fprintf(out, "%-24s  %-30s  %-10s  %s\n", "Key", "Label", "View", "Shapes")
	fmt.Fprintln(out, strings.Repeat("-", 90))
	for _, r := range records {
		fmt.Fprintf(out, "%-24s  %-30s  %-10s  %s\n", r.Key, truncate(r.Label, 30), r.View, strings.Join(r.ShapeIDs, ", "))
	}
	fmt.Fprintf(out, "\n%d muscles\n", len(records))
	return nil
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// --- export subcommand ---

var atlasExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the atlas to YAML or JSON",
	Long: `Export writes every indexed muscle with the geometry of its shapes to
<atlas-dir>/export.yaml or export.json, or to --out.`,
	Args: cobra.NoArgs,
	RunE: runAtlasExport,
}

func runAtlasExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	path, _ := cmd.Flags().GetString("out")

	cfg := loadConfig()
	store, err := atlas.NewStore(cfg.Atlas)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	switch format {
	case "yaml", "":
		if path == "" {
			path = filepath.Join(cfg.Atlas.Dir, "export.yaml")
		}
		err = store.ExportYAML(ctx, path)
	case "json":
		if path == "" {
			path = filepath.Join(cfg.Atlas.Dir, "export.json")
		}
		err = store.ExportJSON(ctx, path)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
	return nil
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	atlasCmd.PersistentFlags().String("atlas-dir", defaultAtlasDir, "directory holding atlas.db")
	_ = viper.BindPFlag("atlas.dir", atlasCmd.PersistentFlags().Lookup("atlas-dir"))

	// Lookup flags.
	atlasLookupCmd.Flags().String("shape", "", "filter by shape ID")
	atlasLookupCmd.Flags().String("label", "", "filter by label substring (case-insensitive)")
	atlasLookupCmd.Flags().String("view", "", "filter by view, e.g. anterior or posterior")
	atlasLookupCmd.Flags().Int("limit", 0, "maximum results (0 = default, negative = all)")
	atlasLookupCmd.Flags().Bool("json", false, "output results as JSON")

	// Export flags.
	atlasExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	atlasExportCmd.Flags().String("out", "", "output file (default <atlas-dir>/export.<format>)")

	// Wire subcommands.
	atlasCmd.AddCommand(atlasIndexCmd)
	atlasCmd.AddCommand(atlasLookupCmd)
	atlasCmd.AddCommand(atlasExportCmd)

	rootCmd.AddCommand(atlasCmd)
}
