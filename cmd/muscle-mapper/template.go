// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/muscle-mapper/internal/mapping"
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Write a mapping template for annotators to fill in",
	Long: `Template writes a mapping document with instructions, the total shape
count, a worked example, and placeholder entries for the first shapes.
Annotators replace the placeholders with real muscle names and views and
group shape IDs under each muscle. A .yaml or .yml output is written as
YAML, anything else as JSON.`,
	Args: cobra.NoArgs,
	RunE: runTemplate,
}

func init() {
	templateCmd.Flags().String("out", defaultTemplate, "mapping template file")
	templateCmd.Flags().Int("placeholders", mapping.DefaultPlaceholders, "placeholder entries to emit (negative = one per shape)")
	_ = viper.BindPFlag("template.output", templateCmd.Flags().Lookup("out"))
	_ = viper.BindPFlag("template.placeholders", templateCmd.Flags().Lookup("placeholders"))

	rootCmd.AddCommand(templateCmd)
}

func runTemplate(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	log := newLogger(cmd, cfg)

	doc, err := extractDocument(cfg, log)
	if err != nil {
		return err
	}

	opts := mapping.TemplateOptions{Placeholders: cfg.Template.Placeholders}
	total, err := mapping.WriteTemplate(cfg.Template.Output, doc.Shapes, opts)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Created template mapping: %s\n", cfg.Template.Output)
	fmt.Fprintf(out, "  %d paths to map\n", total)
	return nil
}
