// Package atlas derives hold sprite anchor points from image dimensions.
package atlas

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"phirapack/internal/params"
)

// MaxCoordinate caps each derived anchor coordinate.
const MaxCoordinate = 200

// Dimensions decodes only the image header at path and returns its size.
func Dimensions(path string) (width, height int, format string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, "", err
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, "", fmt.Errorf("decode %s: %w", path, err)
	}
	return cfg.Width, cfg.Height, format, nil
}

// Center returns the centre of the image at path, each coordinate capped at
// MaxCoordinate. Any read or decode failure yields fallback.
func Center(path string, fallback params.Point) params.Point {
	width, height, _, err := Dimensions(path)
	if err != nil || width <= 0 || height <= 0 {
		return fallback
	}
	return params.Point{
		X: min(width/2, MaxCoordinate),
		Y: min(height/2, MaxCoordinate),
	}
}
