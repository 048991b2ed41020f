// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/muscle-mapper/internal/mapping"
)

var validateCmd = &cobra.Command{
	Use:   "validate <mapping-file>",
	Short: "Check a filled-in mapping against the source SVG",
	Long: `Validate checks that every muscle entry has a label, a list of shape IDs
and a view, and that every referenced shape exists in the source SVG.
Shapes no entry references are listed as unmapped; they do not fail
validation. All problems are reported together.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	log := newLogger(cmd, cfg)

	doc, err := extractDocument(cfg, log)
	if err != nil {
		return err
	}

	report, err := mapping.ValidateFile(args[0], doc.Shapes)
	if err != nil {
		return err
	}
	if err := report.Write(cmd.OutOrStdout()); err != nil {
		return err
	}
	if !report.Valid() {
		return fmt.Errorf("%s: %d validation error(s)", args[0], len(report.Errors))
	}
	return nil
}
