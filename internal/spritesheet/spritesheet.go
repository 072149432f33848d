// Package spritesheet renders the placeholder hit effect animation used when a
// pack does not supply its own sprite sheet.
package spritesheet

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"phirapack/internal/packerr"
	"phirapack/internal/params"
)

// Geometry describes the frame grid and canvas of a sprite sheet.
type Geometry struct {
	Cols         int
	Rows         int
	CanvasWidth  int
	CanvasHeight int
	FrameWidth   int
	FrameHeight  int
}

// GeometryOf extracts the sprite sheet geometry from hit effect settings.
func GeometryOf(fx params.HitFx) Geometry {
	return Geometry{
		Cols:         fx.Cols,
		Rows:         fx.Rows,
		CanvasWidth:  fx.CanvasWidth,
		CanvasHeight: fx.CanvasHeight,
		FrameWidth:   fx.FrameWidth,
		FrameHeight:  fx.FrameHeight,
	}
}

func (g Geometry) validate() error {
	if g.Cols < 1 || g.Rows < 1 || g.CanvasWidth < 1 || g.CanvasHeight < 1 || g.FrameWidth < 1 || g.FrameHeight < 1 {
		return packerr.Wrap(packerr.ErrValidation, "hit effect", "synthesize",
			fmt.Sprintf("geometry must be positive (grid %dx%d, canvas %dx%d, frame %dx%d)",
				g.Cols, g.Rows, g.CanvasWidth, g.CanvasHeight, g.FrameWidth, g.FrameHeight), nil)
	}
	return nil
}

// CellColor returns the fill colour of the frame at (row, col).
func CellColor(row, col int) color.RGBA {
	return color.RGBA{
		R: uint8((row * 30) % 256),
		G: uint8((col * 50) % 256),
		B: uint8(((row + col) * 20) % 256),
		A: 255,
	}
}

// Synthesize paints a fully transparent canvas with one solid rectangle per
// frame. Frames reaching past the canvas edge are clipped.
func Synthesize(g Geometry) (*image.RGBA, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}
	canvas := image.NewRGBA(image.Rect(0, 0, g.CanvasWidth, g.CanvasHeight))
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			x0 := col * g.FrameWidth
			y0 := row * g.FrameHeight
			rect := image.Rect(x0, y0, x0+g.FrameWidth, y0+g.FrameHeight)
			if !rect.Overlaps(canvas.Bounds()) {
				continue
			}
			draw.Draw(canvas, rect, image.NewUniform(CellColor(row, col)), image.Point{}, draw.Src)
		}
	}
	return canvas, nil
}

// WritePNG encodes img as PNG to path, replacing any existing file.
func WritePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return packerr.Wrap(packerr.ErrEnvironment, "hit effect", "create png", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = packerr.Wrap(packerr.ErrEnvironment, "hit effect", "close png", path, closeErr)
		}
	}()
	if err := png.Encode(f, img); err != nil {
		return packerr.Wrap(packerr.ErrSerialization, "hit effect", "encode png", path, err)
	}
	return nil
}
