package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/qwell/internal/frames"
	"github.com/san-kum/qwell/internal/quantum"
	"github.com/san-kum/qwell/internal/render"
)

const (
	canvasWidth  = 80
	canvasHeight = 22
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
	savedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("48")).Bold(true)
)

type TickMsg time.Time

// Model plays a precomputed frame sequence in the terminal. All the
// physics happened before the program starts; Update only moves the
// playhead.
type Model struct {
	grid     []float64
	result   *frames.Result
	fps      int
	gifPath  string
	canvas   *Canvas
	playhead int
	running  bool
	showHelp bool
	saved    string
	probe    []float64 // density at the box midpoint, one value per frame
}

// NewModel wires a sampled result into a playback model. gifPath is
// where the g key writes the animation.
func NewModel(grid []float64, result *frames.Result, fps int, gifPath string) Model {
	if fps < 1 {
		fps = 20
	}
	probe := make([]float64, len(result.Frames))
	mid := len(grid) / 2
	for i, f := range result.Frames {
		if mid < len(f.Density) {
			probe[i] = f.Density[mid]
		}
	}
	return Model{
		grid:    grid,
		result:  result,
		fps:     fps,
		gifPath: gifPath,
		canvas:  NewCanvas(canvasWidth, canvasHeight),
		running: true,
		probe:   probe,
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.playhead = 0
			m.running = true
		case "[", "left":
			m.running = false
			m.scrub(-1)
		case "]", "right":
			m.running = false
			m.scrub(1)
		case "g":
			opts := render.DefaultOptions()
			opts.FPS = m.fps
			if err := render.WriteGIF(m.gifPath, m.grid, m.result, opts); err != nil {
				m.saved = "gif failed: " + err.Error()
			} else {
				m.saved = "saved " + m.gifPath
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.playhead = (m.playhead + 1) % len(m.result.Frames)
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) scrub(dir int) {
	m.playhead += dir
	if m.playhead < 0 {
		m.playhead = 0
	}
	if m.playhead >= len(m.result.Frames) {
		m.playhead = len(m.result.Frames) - 1
	}
}

func (m Model) View() string {
	frame := m.result.Frames[m.playhead]

	m.canvas.Clear()
	m.canvas.PlotSeries(frame.Density, m.result.Bounds.YMax)
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render("INFINITE SQUARE WELL") + "\n")
	status := "PLAYING"
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	if m.playhead > 1 {
		chart := asciigraph.Plot(m.probe[:m.playhead+1],
			asciigraph.Height(4),
			asciigraph.Width(30),
			asciigraph.Caption("|psi|^2 at x=L/2"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Frame") + valueStyle.Render(fmt.Sprintf("%d/%d", m.playhead+1, len(m.result.Frames))) + "\n")
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(frame.Label) + "\n")
	norm := quantum.Norm(m.grid, frame.Density)
	s.WriteString(labelStyle.Render("Norm") + valueStyle.Render(fmt.Sprintf("%.6f", norm)) + "\n")
	s.WriteString(labelStyle.Render("Peak") + valueStyle.Render(fmt.Sprintf("%.3e", m.result.Metrics["peak_density"])) + "\n")
	if m.saved != "" {
		s.WriteString("\n" + savedStyle.Render(m.saved) + "\n")
	}
	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Restart Q:Quit\nG:Save GIF [ ]:Scrub ?:Help"))

	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume playback    ║
║  R        - Restart from t=0         ║
║  [ / ]    - Scrub one frame          ║
║  G        - Write the animated GIF   ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}
