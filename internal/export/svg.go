// Package export renders stored runs as standalone SVG images.
package export

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/orbsim/internal/viz"
)

// Circle is a planet outline in world coordinates.
type Circle struct {
	Name   string
	Center r2.Vec
	Radius float64
}

// Scene is everything drawn by TrajectoryToSVG.
type Scene struct {
	Path       []r2.Vec
	Planets    []Circle
	Collisions []r2.Vec
	Stroke     string
}

// CanvasToSVG converts a Braille canvas to SVG format
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	w, h := canvas.Dots()
	width := float64(w) * scale
	height := float64(h) * scale

	var sb strings.Builder

	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#00ff00">
`, width, height, width, height)

	dotRadius := scale * 0.4
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotRadius)
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// TrajectoryToSVG draws the vehicle path over the planets it flew among,
// with equal scale on both axes and y pointing up.
func TrajectoryToSVG(scene Scene, width, height int) string {
	if len(scene.Path) < 2 {
		return ""
	}
	stroke := scene.Stroke
	if stroke == "" {
		stroke = "#00ffff"
	}

	// Find bounds
	minX, maxX := scene.Path[0].X, scene.Path[0].X
	minY, maxY := scene.Path[0].Y, scene.Path[0].Y
	grow := func(p r2.Vec, r float64) {
		minX, maxX = math.Min(minX, p.X-r), math.Max(maxX, p.X+r)
		minY, maxY = math.Min(minY, p.Y-r), math.Max(maxY, p.Y+r)
	}
	for _, p := range scene.Path {
		grow(p, 0)
	}
	for _, c := range scene.Planets {
		grow(c.Center, c.Radius)
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	scale := math.Min(float64(width)/rangeX, float64(height)/rangeY)
	offX := (float64(width) - rangeX*scale) / 2
	offY := (float64(height) - rangeY*scale) / 2
	project := func(p r2.Vec) (float64, float64) {
		return offX + (p.X-minX)*scale, float64(height) - offY - (p.Y-minY)*scale
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	for _, c := range scene.Planets {
		x, y := project(c.Center)
		fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill=\"#1a2a4a\" stroke=\"#4477aa\"><title>%s</title></circle>\n",
			x, y, math.Max(c.Radius*scale, 1), c.Name)
	}

	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, stroke)
	for i, p := range scene.Path {
		x, y := project(p)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}
	sb.WriteString("\"/>\n")

	for _, p := range scene.Collisions {
		x, y := project(p)
		fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"3\" fill=\"#ff4444\"/>\n", x, y)
	}

	sb.WriteString("</svg>")
	return sb.String()
}
