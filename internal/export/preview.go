// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/pdiddy/muscle-mapper/pkg/types"
)

// maxPreviewHeight bounds the preview for very tall view boxes.
const maxPreviewHeight = 8192

// parseViewBox returns the width and height of a "minX minY width height"
// view box. Commas are accepted as separators.
func parseViewBox(viewBox string) (w, h float64, err error) {
	fields := strings.FieldsFunc(viewBox, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) != 4 {
		return 0, 0, fmt.Errorf("viewBox %q: want 4 numbers, got %d", viewBox, len(fields))
	}
	var nums [4]float64
	for i, f := range fields {
		nums[i], err = strconv.ParseFloat(f, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("viewBox %q: %w", viewBox, err)
		}
	}
	if nums[2] <= 0 || nums[3] <= 0 {
		return 0, 0, fmt.Errorf("viewBox %q: width and height must be positive", viewBox)
	}
	return nums[2], nums[3], nil
}

// RenderPNG rasterizes one shape at the given pixel width on a white
// background. The height follows the view box aspect ratio.
func RenderPNG(viewBox string, hasViewBox bool, s types.ShapeRecord, width int) (image.Image, error) {
	if !hasViewBox {
		return nil, errors.New("source document has no viewBox to size the preview")
	}
	vw, vh, err := parseViewBox(viewBox)
	if err != nil {
		return nil, err
	}
	height := int(math.Round(float64(width) * vh / vw))
	if height < 1 {
		height = 1
	}
	if height > maxPreviewHeight {
		return nil, fmt.Errorf("preview height %d exceeds %d", height, maxPreviewHeight)
	}

	// The background is painted directly so the rasterizer only sees the path.
	var src bytes.Buffer
	fmt.Fprintf(&src, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s">`, escapeAttr(viewBox))
	fmt.Fprintf(&src, `<path d="%s" style="%s"/></svg>`, escapeAttr(s.D), escapeAttr(s.Style))

	icon, err := oksvg.ReadIconStream(&src, oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parsing shape: %w", err)
	}
	icon.SetTarget(0, 0, float64(width), float64(height))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(width, height, scanner), 1.0)
	return img, nil
}

func writePNG(path, viewBox string, hasViewBox bool, s types.ShapeRecord, width int) error {
	img, err := RenderPNG(viewBox, hasViewBox, s, width)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return &types.IOError{Op: "create", Path: path, Err: err}
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return &types.IOError{Op: "write", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &types.IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}
