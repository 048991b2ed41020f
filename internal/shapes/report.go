// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package shapes

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/pdiddy/muscle-mapper/pkg/types"
)

// WriteReport writes the numbered path-ID listing for shapes.
func WriteReport(w io.Writer, shapes []types.ShapeRecord) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "# Muscle Path IDs")
	fmt.Fprintf(bw, "# Total: %d\n\n", len(shapes))
	for i, s := range shapes {
		fmt.Fprintf(bw, "%2d. %s\n", i+1, s.ID)
	}
	return bw.Flush()
}

// ExportReport writes the path-ID listing to path, replacing any existing
// file, and returns the number of shapes listed.
func ExportReport(path string, shapes []types.ShapeRecord) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, &types.IOError{Op: "write", Path: path, Err: err}
	}
	if err := WriteReport(f, shapes); err != nil {
		f.Close()
		return 0, &types.IOError{Op: "write", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return 0, &types.IOError{Op: "write", Path: path, Err: err}
	}
	return len(shapes), nil
}
