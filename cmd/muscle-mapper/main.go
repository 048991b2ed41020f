// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the muscle-mapper CLI.
// Stages: extract, template, validate, separate, plus the atlas index.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the muscle-mapper CLI.
var rootCmd = &cobra.Command{
	Use:   "muscle-mapper",
	Short: "Map anatomy-chart shapes to named muscles",
	Long: `muscle-mapper extracts the muscle shapes of an anatomy vector image by
their fill color and helps annotators name them.

Stages are subcommands: extract lists the shape IDs, template writes a
mapping skeleton to fill in, validate checks a filled-in mapping against
the image, and separate writes one SVG per shape for visual inspection.
The atlas subcommands index a validated mapping for lookups and export.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./muscle-mapper.yaml or ~/.config/muscle-mapper/muscle-mapper.yaml)")
	flags.String("svg", defaultSVG, "source anatomy SVG")
	flags.String("signature", "", "fill color that marks muscle shapes (default #f39079)")
	flags.String("match", "", "shape selection mode: fill or substring (default fill)")
	flags.BoolP("verbose", "v", false, "log per-file detail to stderr")

	for _, key := range []string{"svg", "signature", "match", "verbose"} {
		_ = viper.BindPFlag(key, flags.Lookup(key))
	}
}

func initConfig() {
	// A missing .env is fine.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("muscle-mapper")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "muscle-mapper"))
		}
	}

	viper.SetEnvPrefix("MUSCLE_MAPPER")
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
