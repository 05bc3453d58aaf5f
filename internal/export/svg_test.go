package export

import (
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/orbsim/internal/viz"
)

func TestTrajectoryToSVG(t *testing.T) {
	scene := Scene{
		Path:       []r2.Vec{{X: 0, Y: 50}, {X: 10, Y: 60}, {X: 30, Y: 80}},
		Planets:    []Circle{{Name: "earth", Center: r2.Vec{Y: -10000}, Radius: 500}},
		Collisions: []r2.Vec{{X: 30, Y: 80}},
	}

	svg := TrajectoryToSVG(scene, 400, 300)

	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg" width="400" height="300"`,
		`<title>earth</title>`,
		`stroke="#00ffff"`,
		`fill="#ff4444"`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("expected %q in output", want)
		}
	}
	if got := strings.Count(svg, " L"); got != 2 {
		t.Errorf("expected 2 line segments, got %d", got)
	}
	if !strings.HasSuffix(svg, "</svg>") {
		t.Error("svg not closed")
	}
}

func TestTrajectoryToSVGTooShort(t *testing.T) {
	if svg := TrajectoryToSVG(Scene{Path: []r2.Vec{{}}}, 100, 100); svg != "" {
		t.Errorf("expected empty output, got %q", svg)
	}
}

func TestCanvasToSVG(t *testing.T) {
	if CanvasToSVG(nil, 2) != "" {
		t.Error("nil canvas should render nothing")
	}

	c := viz.NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)

	svg := CanvasToSVG(c, 4)
	if got := strings.Count(svg, "<circle"); got != 2 {
		t.Errorf("expected 2 dots, got %d", got)
	}
	if !strings.Contains(svg, `width="16" height="16"`) {
		t.Errorf("unexpected size in %q", svg[:120])
	}
}
