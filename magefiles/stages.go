//go:build mage

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

func cli(args ...string) error {
	return sh.RunV(filepath.Join(binDir, binName), args...)
}

// Extract writes the muscle path-ID report for the configured SVG.
func Extract() error {
	mg.Deps(Build)
	return cli("extract")
}

// Template writes the mapping template for annotators.
func Template() error {
	mg.Deps(Build)
	return cli("template")
}

// Validate checks a filled-in mapping. Set MAPPING to pick the file
// (default muscle_mapping.json).
func Validate() error {
	mg.Deps(Build)
	return cli("validate", mappingFile())
}

// Separate writes one SVG per muscle shape into individual_muscles/.
func Separate() error {
	mg.Deps(Build, Init)
	return cli("separate")
}

// Atlas validates the mapping, indexes it, and exports the atlas as YAML.
func Atlas() error {
	mg.Deps(Build, Init)
	if err := cli("atlas", "index", mappingFile()); err != nil {
		return err
	}
	return cli("atlas", "export", "--format", "yaml")
}

func mappingFile() string {
	if f := os.Getenv("MAPPING"); f != "" {
		return f
	}
	return "muscle_mapping.json"
}
