// Package tui is the live terminal view of a running scenario.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/orbsim/internal/metrics"
	"github.com/san-kum/orbsim/internal/sim"
	"github.com/san-kum/orbsim/internal/viz"
	"github.com/san-kum/orbsim/internal/vmath"
)

const (
	historyLen = 60
	trailLen   = 400
	maxSpeedUp = 64
)

type Options struct {
	Scenario        string
	Steps           int
	StopOnCollision bool
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Live steps a simulator on a timer and draws the vehicle among the planets.
type Live struct {
	sim    *sim.Simulator
	opts   Options
	taken  int
	paused bool
	done   bool
	err    error
	impact string

	// seconds stepped per tick
	speedUp int

	speeds []float64
	trail  []r2.Vec

	width  int
	height int
}

func NewLive(s *sim.Simulator, opts Options) *Live {
	return &Live{
		sim:     s,
		opts:    opts,
		speedUp: 1,
		speeds:  make([]float64, 0, historyLen),
		trail:   []r2.Vec{s.Vehicle().Current().Position},
		width:   80,
		height:  30,
	}
}

func (m *Live) Init() tea.Cmd { return tick() }

func (m *Live) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "+", "=":
			m.speedUp = min(m.speedUp*2, maxSpeedUp)
		case "-":
			m.speedUp = max(m.speedUp/2, 1)
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if !m.paused && !m.done {
			m.advance()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Live) advance() {
	for i := 0; i < m.speedUp && !m.done; i++ {
		st, hit, err := m.sim.Step()
		if err != nil {
			m.err = err
			m.done = true
			return
		}
		m.taken++

		m.speeds = append(m.speeds, st.Speed())
		if len(m.speeds) > historyLen {
			m.speeds = m.speeds[1:]
		}
		m.trail = append(m.trail, st.Position)
		if len(m.trail) > trailLen {
			m.trail = m.trail[1:]
		}

		if hit != nil {
			m.impact = fmt.Sprintf("hit %s at t=%ds", hit.Body.Name(), hit.Second)
			if m.opts.StopOnCollision {
				m.done = true
			}
		}
		if m.taken >= m.opts.Steps {
			m.done = true
		}
	}
}

// Err is the step error that ended the run, if any.
func (m *Live) Err() error { return m.err }

// Taken is the number of seconds stepped so far.
func (m *Live) Taken() int { return m.taken }

func (m *Live) View() string {
	var b strings.Builder
	vehicle := m.sim.Vehicle()
	st := vehicle.Current()
	second := vehicle.LocalSecond()

	status := viz.StatusRunning.Render("● running")
	switch {
	case m.err != nil:
		status = viz.StatusImpact.Render("✕ failed")
	case m.done:
		status = viz.Subtle.Render("■ done")
	case m.paused:
		status = viz.StatusPaused.Render("○ paused")
	}
	fmt.Fprintf(&b, "\n  %s  %s  %s\n", viz.Title.Render(m.opts.Scenario), status, viz.Subtle.Render(fmt.Sprintf("x%d", m.speedUp)))
	fmt.Fprintf(&b, "  %s %s\n\n", viz.ProgressBar(m.taken, m.opts.Steps, 40), viz.Subtle.Render(fmt.Sprintf("%d/%ds", m.taken, m.opts.Steps)))

	b.WriteString(m.orbitView(second))

	alt, nearest := metrics.Altitude(st, m.sim.Planets(), second)
	altText := "-"
	if nearest != nil {
		altText = fmt.Sprintf("%.0f m (%s)", alt, nearest.Name())
	}
	b.WriteString("\n")
	b.WriteString("  " + viz.Field("t", fmt.Sprintf("%ds", second), 14) + "   " + viz.Field("speed", fmt.Sprintf("%.1f m/s", st.Speed()), 24) + "\n")
	b.WriteString("  " + viz.Field("angle", fmt.Sprintf("%.1f°", st.Angle), 14) + "   " + viz.Field("altitude", altText, 24) + "\n")

	if len(m.speeds) > 1 {
		chart := asciigraph.Plot(m.speeds, asciigraph.Height(5), asciigraph.Width(50), asciigraph.Caption("speed m/s"))
		b.WriteString("\n" + indent(chart, "  ") + "\n")
	}

	if m.impact != "" {
		b.WriteString("\n  " + viz.StatusImpact.Render(m.impact) + "\n")
	}
	if m.err != nil {
		b.WriteString("\n  " + viz.StatusImpact.Render(m.err.Error()) + "\n")
	}

	b.WriteString("\n" + viz.KeyHint.Render("  space pause  +/- speed  q quit") + "\n")
	return b.String()
}

func (m *Live) orbitView(second int) string {
	cw := max(m.width-6, 40)
	ch := max(m.height-18, 8)
	canvas := viz.NewCanvas(cw, ch)

	points := append([]r2.Vec(nil), m.trail...)
	radii := make([]float64, len(points), len(points)+len(m.sim.Planets()))
	centers := make([]r2.Vec, 0, len(m.sim.Planets()))
	for _, p := range m.sim.Planets() {
		c, err := p.PositionAt(second, false)
		if err != nil {
			continue
		}
		centers = append(centers, c)
		points = append(points, c)
		radii = append(radii, p.Radius())
	}
	proj := viz.Fit(canvas, points, radii)

	for i, c := range centers {
		x, y := proj.Dot(c)
		canvas.DrawCircle(x, y, proj.Length(radii[len(m.trail)+i]))
	}
	for i := 1; i < len(m.trail); i++ {
		x0, y0 := proj.Dot(m.trail[i-1])
		x1, y1 := proj.Dot(m.trail[i])
		canvas.DrawLine(x0, y0, x1, y1)
	}
	// heading tick at the vehicle
	head := m.trail[len(m.trail)-1]
	hx, hy := proj.Dot(head)
	dir := vmath.DirFromAngle(m.sim.Vehicle().Current().Angle)
	canvas.DrawLine(hx, hy, hx+int(3*dir.X), hy-int(3*dir.Y))

	return indent(strings.TrimRight(canvas.String(), "\n"), "  ") + "\n"
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

// Run shows the live view until the scenario ends and the user quits.
func Run(s *sim.Simulator, opts Options) error {
	m := NewLive(s, opts)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return err
	}
	return m.Err()
}
