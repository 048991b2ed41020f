// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/muscle-mapper/internal/export"
)

var separateCmd = &cobra.Command{
	Use:   "separate",
	Short: "Write one SVG per muscle shape",
	Long: `Separate writes each muscle shape to <out-dir>/<id>.svg, drawn alone on a
white background in the source image's coordinate frame. With --png a
raster preview is written next to each SVG. Shapes that cannot be written
are listed and the command exits non-zero; the others are still written.`,
	Args: cobra.NoArgs,
	RunE: runSeparate,
}

func init() {
	separateCmd.Flags().String("out-dir", defaultExportDir, "directory for the per-shape files")
	separateCmd.Flags().Bool("png", false, "also write a PNG preview per shape")
	separateCmd.Flags().Int("png-width", export.DefaultPNGWidth, "PNG preview width in pixels")
	_ = viper.BindPFlag("export.dir", separateCmd.Flags().Lookup("out-dir"))
	_ = viper.BindPFlag("export.png", separateCmd.Flags().Lookup("png"))
	_ = viper.BindPFlag("export.png_width", separateCmd.Flags().Lookup("png-width"))

	rootCmd.AddCommand(separateCmd)
}

func runSeparate(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	log := newLogger(cmd, cfg)

	doc, err := extractDocument(cfg, log)
	if err != nil {
		return err
	}

	result, err := export.NewExporter(cfg.Export, log).Export(doc)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d individual SVG files to %s\n", result.Written, cfg.Export.Dir)
	if result.HasFailures() {
		return fmt.Errorf("%d shape(s) failed export", result.Failed())
	}
	return nil
}
