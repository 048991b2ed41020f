// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/muscle-mapper/internal/shapes"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "List the IDs of every muscle shape in the source SVG",
	Long: `Extract selects the path elements whose fill matches the muscle color
signature and writes a numbered list of their IDs, in document order, to
the report file.`,
	Args: cobra.NoArgs,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().String("out", defaultReport, "path-ID report file")
	_ = viper.BindPFlag("extract.output", extractCmd.Flags().Lookup("out"))

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	log := newLogger(cmd, cfg)

	doc, err := extractDocument(cfg, log)
	if err != nil {
		return err
	}

	n, err := shapes.ExportReport(cfg.Extract.Output, doc.Shapes)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d path IDs to %s\n", n, cfg.Extract.Output)
	return nil
}
