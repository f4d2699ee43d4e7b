package viz

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/lattice/internal/config"
	"github.com/san-kum/lattice/internal/engine"
)

const historyCapacity = 120

type Options struct {
	FPS   int
	Theme string
	Cols  int
	Rows  int
}

func DefaultOptions() Options {
	return Options{FPS: 30, Theme: ThemeMinimal.Name, Cols: 80, Rows: 24}
}

// TerminalConfig adapts cfg to braille resolution: the vignette bands
// would cover the whole canvas, and frame pacing is fixed by the tick.
func TerminalConfig(cfg *config.Config) *config.Config {
	c := *cfg
	c.Planar.Vignette = 0
	c.Sphere.Vignette = 0
	c.Quality.Adaptive = false
	return &c
}

type tickMsg time.Time

func tick(fps int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Model is the Bubble Tea program of the terminal preview. The cursor is
// driven from the keyboard and eased towards its target with a spring.
type Model struct {
	eng     *engine.Engine
	surface *Surface
	canvas  *Canvas
	opts    Options

	keys   keyMap
	help   help.Model
	bar    progress.Model
	theme  int
	styles Styles

	spring         harmonica.Spring
	cx, cy, vx, vy float64
	tx, ty         float64
	pointer        bool

	stats  engine.FrameStats
	energy []float64
	start  time.Time
}

func NewModel(eng *engine.Engine, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = DefaultOptions().FPS
	}
	theme := themeIndex(opts.Theme)
	cols, rows := max(opts.Cols, 10), max(opts.Rows, 4)
	canvas := NewCanvas(cols, rows)
	w, h := canvas.Pixels()

	m := Model{
		eng:     eng,
		surface: NewSurface(w, h),
		canvas:  canvas,
		opts:    opts,
		keys:    defaultKeys(),
		help:    help.New(),
		bar:     progress.New(progress.WithScaledGradient("#444444", string(Themes[theme].Accent)), progress.WithoutPercentage()),
		theme:   theme,
		styles:  NewStyles(Themes[theme]),
		spring:  harmonica.NewSpring(harmonica.FPS(opts.FPS), 6.0, 0.9),
		energy:  make([]float64, 0, historyCapacity),
		start:   time.Now(),
	}
	m.bar.Width = panelWidth - 6
	eng.Resize(w, h)
	m.cx, m.cy = float64(w)/2, float64(h)/2
	m.tx, m.ty = m.cx, m.cy
	return m
}

func (m Model) Init() tea.Cmd { return tick(m.opts.FPS) }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width-panelWidth-3, msg.Height-1)
		m.help.Width = panelWidth - 4
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tickMsg:
		m.advance(time.Time(msg))
		return m, tick(m.opts.FPS)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	w, h := m.surface.Size()
	step := float64(max(2, w/40))
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.ty -= step
	case key.Matches(msg, m.keys.Down):
		m.ty += step
	case key.Matches(msg, m.keys.Left):
		m.tx -= step
	case key.Matches(msg, m.keys.Right):
		m.tx += step
	case key.Matches(msg, m.keys.Pointer):
		m.pointer = !m.pointer
		if m.pointer {
			m.eng.PointerEnter()
		} else {
			m.eng.PointerLeave()
		}
	case key.Matches(msg, m.keys.Rebuild):
		m.eng.Resize(w, h)
	case key.Matches(msg, m.keys.Wave):
		m.eng.Wave()
	case key.Matches(msg, m.keys.Theme):
		m.theme = (m.theme + 1) % len(Themes)
		m.styles = NewStyles(Themes[m.theme])
		m.bar = progress.New(progress.WithScaledGradient("#444444", string(Themes[m.theme].Accent)), progress.WithoutPercentage())
		m.bar.Width = panelWidth - 6
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	m.tx = clampf(m.tx, 0, float64(w-1))
	m.ty = clampf(m.ty, 0, float64(h-1))
	return m, nil
}

func (m *Model) resize(cols, rows int) {
	cols, rows = max(cols, 10), max(rows, 4)
	if cols == m.canvas.Cols && rows == m.canvas.Rows {
		return
	}
	m.canvas.Resize(cols, rows)
	w, h := m.canvas.Pixels()
	m.surface.Resize(w, h)
	m.eng.Resize(w, h)
	m.tx = clampf(m.tx, 0, float64(w-1))
	m.ty = clampf(m.ty, 0, float64(h-1))
}

// advance eases the cursor, runs one engine frame and redraws the canvas.
func (m *Model) advance(now time.Time) {
	m.cx, m.vx = m.spring.Update(m.cx, m.vx, m.tx)
	m.cy, m.vy = m.spring.Update(m.cy, m.vy, m.ty)
	if m.pointer {
		m.eng.PointerMove(m.cx, m.cy)
	}

	m.stats = m.eng.Frame(now.Sub(m.start).Seconds(), m.surface)
	m.surface.Flush(m.canvas)
	if m.pointer {
		x, y := int(m.cx), int(m.cy)
		m.canvas.DrawLine(x-2, y, x+2, y)
		m.canvas.DrawLine(x, y-2, x, y+2)
	}

	if len(m.energy) == historyCapacity {
		copy(m.energy, m.energy[1:])
		m.energy = m.energy[:historyCapacity-1]
	}
	m.energy = append(m.energy, m.stats.KineticEnergy)
}

// Cursor is the eased cursor position in sub-pixels.
func (m Model) Cursor() (x, y float64) { return m.cx, m.cy }

func (m Model) Stats() engine.FrameStats { return m.stats }

func (m Model) Canvas() *Canvas { return m.canvas }

func (m Model) View() string {
	st := m.styles
	var s strings.Builder
	s.WriteString(st.Header.Render(strings.ToUpper("lattice · "+m.eng.Config().Mode)) + "\n")

	status := "POINTER OFF"
	if m.pointer {
		status = "POINTER ON"
	}
	s.WriteString(st.Status.Render(status) + "\n\n")

	s.WriteString(st.Row("Substeps", fmt.Sprintf("%d", m.stats.Substeps)))
	s.WriteString(st.Row("Kinetic", fmt.Sprintf("%.4g", m.stats.KineticEnergy)))
	s.WriteString(st.Row("Max disp", fmt.Sprintf("%.3f", m.stats.MaxDisplacement)))
	s.WriteString(st.Row("Quality", m.stats.Level.String()))
	s.WriteString(st.Row("Points", fmt.Sprintf("%d", m.stats.Drawn)))
	s.WriteString(st.Row("Theme", Themes[m.theme].Name))

	s.WriteString("\n" + m.bar.ViewAs(m.displacementRatio()) + "\n")

	if len(m.energy) > 1 {
		chart := asciigraph.Plot(m.energy,
			asciigraph.Height(5),
			asciigraph.Width(panelWidth-12),
			asciigraph.Caption("kinetic energy"))
		s.WriteString(st.Graph.Render(chart) + "\n")
	}

	s.WriteString(st.Separator(panelWidth-4) + "\n")
	s.WriteString(st.Help.Render(m.help.View(m.keys)))

	canvas := st.Canvas.Render(m.canvas.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvas, st.Panel.Render(s.String()))
}

// displacementRatio is the largest displacement relative to the lattice
// spacing, or to a tenth of the sphere radius.
func (m Model) displacementRatio() float64 {
	l := m.eng.Lattice()
	ref := l.Spacing
	if ref <= 0 {
		ref = l.Radius * 0.1
	}
	if ref <= 0 {
		return 0
	}
	return clampf(m.stats.MaxDisplacement/ref, 0, 1)
}

func clampf(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}

// Run starts the preview in the alternate screen and blocks until quit.
func Run(eng *engine.Engine, opts Options) error {
	defer eng.Close()
	_, err := tea.NewProgram(NewModel(eng, opts), tea.WithAltScreen()).Run()
	return err
}
