// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/muscle-mapper/internal/export"
	"github.com/pdiddy/muscle-mapper/internal/logging"
	"github.com/pdiddy/muscle-mapper/internal/mapping"
	"github.com/pdiddy/muscle-mapper/internal/shapes"
	"github.com/pdiddy/muscle-mapper/pkg/types"
)

const (
	defaultSVG       = "Muscles_front_and_back.svg"
	defaultReport    = "muscle_path_ids.txt"
	defaultTemplate  = "muscle_mapping_template.json"
	defaultExportDir = "individual_muscles"
	defaultAtlasDir  = "atlas"
)

func setDefaults() {
	// Nested keys read from MUSCLE_MAPPER_EXPORT_DIR and friends.
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("svg", defaultSVG)
	viper.SetDefault("signature", types.DefaultSignature)
	viper.SetDefault("match", string(types.MatchFill))
	viper.SetDefault("verbose", false)
	viper.SetDefault("extract.output", defaultReport)
	viper.SetDefault("template.output", defaultTemplate)
	viper.SetDefault("template.placeholders", mapping.DefaultPlaceholders)
	viper.SetDefault("export.dir", defaultExportDir)
	viper.SetDefault("export.png", false)
	viper.SetDefault("export.png_width", export.DefaultPNGWidth)
	viper.SetDefault("atlas.dir", defaultAtlasDir)
}

// loadConfig assembles the typed configuration from flags, environment,
// config file and defaults, in viper's precedence order.
func loadConfig() types.MapperConfig {
	return types.MapperConfig{
		SVG:       viper.GetString("svg"),
		Signature: viper.GetString("signature"),
		Match:     types.MatchMode(viper.GetString("match")),
		Verbose:   viper.GetBool("verbose"),
		Extract: types.ExtractConfig{
			Output: viper.GetString("extract.output"),
		},
		Template: types.TemplateConfig{
			Output:       viper.GetString("template.output"),
			Placeholders: viper.GetInt("template.placeholders"),
		},
		Export: types.ExportConfig{
			Dir:      viper.GetString("export.dir"),
			PNG:      viper.GetBool("export.png"),
			PNGWidth: viper.GetInt("export.png_width"),
		},
		Atlas: types.AtlasConfig{
			Dir: viper.GetString("atlas.dir"),
		},
	}
}

// newLogger writes diagnostics to the command's stderr.
func newLogger(cmd *cobra.Command, cfg types.MapperConfig) logging.Logger {
	return logging.NewWriterLogger(cmd.ErrOrStderr(), cfg.Verbose)
}

// extractDocument runs the shape extractor configured by cfg.
func extractDocument(cfg types.MapperConfig, log logging.Logger) (*shapes.Document, error) {
	extractor, err := shapes.NewExtractor(cfg.Signature, cfg.Match)
	if err != nil {
		return nil, err
	}
	log.Verbose("extracting %s (signature %s, match %s)", cfg.SVG, extractor.Signature(), extractor.Mode())
	doc, err := extractor.ExtractFile(cfg.SVG)
	if err != nil {
		return nil, err
	}
	log.Verbose("found %d shapes", len(doc.Shapes))
	return doc, nil
}
