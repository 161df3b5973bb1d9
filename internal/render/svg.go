package render

import (
	"fmt"
	"strings"

	"github.com/san-kum/qwell/internal/frames"
)

// DensityToSVG renders one frame's density curve as a standalone SVG
// document with the frame's time label in the corner.
func DensityToSVG(grid []float64, f frames.Frame, b frames.Bounds, width, height int) string {
	if len(grid) < 2 || len(f.Density) < 2 {
		return ""
	}

	xRange := b.XMax - b.XMin
	if xRange <= 0 {
		xRange = 1
	}
	yMax := b.YMax
	if yMax <= 0 {
		yMax = 1
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="#00ff88" stroke-width="1.5" d="M`,
		width, height, width, height))

	n := len(grid)
	if len(f.Density) < n {
		n = len(f.Density)
	}
	for i := 0; i < n; i++ {
		x := (grid[i] - b.XMin) / xRange * float64(width)
		ratio := f.Density[i] / yMax
		if ratio < 0 {
			ratio = 0
		}
		if ratio > 1 {
			ratio = 1
		}
		y := float64(height) * (1 - ratio)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(fmt.Sprintf(`"/>
<text x="8" y="16" fill="#888899" font-family="monospace" font-size="12">%s</text>
</svg>`, f.Label))
	return sb.String()
}
