// Package render turns sampled frames into image artifacts. It only
// consumes the grid, the ordered frames and the axis bounds; nothing in
// the core depends on it.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"os"

	"github.com/san-kum/qwell/internal/frames"
)

// Options control the rasterized animation.
type Options struct {
	Width  int
	Height int
	FPS    int
}

func DefaultOptions() Options {
	return Options{Width: 640, Height: 360, FPS: 20}
}

const margin = 10

var palette = color.Palette{
	color.RGBA{0x0a, 0x0a, 0x0a, 0xff}, // background
	color.RGBA{0x44, 0x44, 0x66, 0xff}, // axes
	color.RGBA{0x00, 0xff, 0x88, 0xff}, // density curve
	color.RGBA{0xff, 0xaa, 0x00, 0xff}, // progress marker
}

// WriteGIF rasterizes each density curve and assembles the looping
// animated GIF at path.
func WriteGIF(path string, grid []float64, result *frames.Result, opts Options) error {
	anim, err := Animate(grid, result, opts)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: create %s: %w", path, err)
	}
	defer f.Close()
	return gif.EncodeAll(f, anim)
}

// Animate builds the GIF in memory, one paletted image per frame.
func Animate(grid []float64, result *frames.Result, opts Options) (*gif.GIF, error) {
	if result == nil || len(result.Frames) == 0 {
		return nil, frames.ErrNoFrames
	}
	if opts.Width < 2*margin || opts.Height < 2*margin {
		return nil, fmt.Errorf("render: canvas %dx%d too small", opts.Width, opts.Height)
	}
	fps := opts.FPS
	if fps < 1 {
		fps = DefaultOptions().FPS
	}
	delay := 100 / fps // GIF delays are in 1/100 s
	if delay < 1 {
		delay = 1
	}

	total := len(result.Frames)
	anim := &gif.GIF{LoopCount: 0}
	for _, f := range result.Frames {
		progress := 0.0
		if total > 1 {
			progress = float64(f.Index) / float64(total-1)
		}
		anim.Image = append(anim.Image, rasterize(grid, f, result.Bounds, opts, progress))
		anim.Delay = append(anim.Delay, delay)
	}
	return anim, nil
}

func rasterize(grid []float64, f frames.Frame, b frames.Bounds, opts Options, progress float64) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, opts.Width, opts.Height), palette)

	plotW := opts.Width - 2*margin
	plotH := opts.Height - 2*margin
	bottom := opts.Height - margin

	// axes
	drawLine(img, margin, bottom, margin+plotW, bottom, 1)
	drawLine(img, margin, margin, margin, bottom, 1)
	drawLine(img, margin+plotW, margin, margin+plotW, bottom, 1)

	xRange := b.XMax - b.XMin
	if xRange <= 0 {
		xRange = 1
	}
	yMax := b.YMax
	if yMax <= 0 {
		yMax = 1
	}

	prevX, prevY := 0, 0
	for i, x := range grid {
		if i >= len(f.Density) {
			break
		}
		px := margin + int(float64(plotW)*(x-b.XMin)/xRange)
		ratio := f.Density[i] / yMax
		if ratio < 0 {
			ratio = 0
		}
		if ratio > 1 {
			ratio = 1
		}
		py := bottom - int(float64(plotH)*ratio)
		if i > 0 {
			drawLine(img, prevX, prevY, px, py, 2)
		}
		prevX, prevY = px, py
	}

	// progress marker along the top edge stands in for the time label
	mx := margin + int(float64(plotW)*progress)
	for dy := 0; dy < 3; dy++ {
		for dx := -1; dx <= 1; dx++ {
			setPixel(img, mx+dx, margin/2+dy, 3)
		}
	}

	return img
}

func setPixel(img *image.Paletted, x, y int, ci uint8) {
	if image.Pt(x, y).In(img.Rect) {
		img.SetColorIndex(x, y, ci)
	}
}

// drawLine rasterizes a segment with Bresenham's algorithm.
func drawLine(img *image.Paletted, x0, y0, x1, y1 int, ci uint8) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy
	for {
		setPixel(img, x0, y0, ci)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
