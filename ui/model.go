// Package ui implements the Bubbletea TUI for the apz terminal audio player.
package ui

import (
	"log/slog"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"

	"apz/player"
	"apz/spectrum"
)

// Engine is the part of the player the UI drives. *player.Player
// implements it.
type Engine interface {
	TogglePause()
	Restart() error
	Seek(d time.Duration) error
	AdjustVolume(delta float64)
	Status() player.Status
	Waveform() player.Waveform
}

// Config holds the UI settings chosen on the command line.
type Config struct {
	Path       string
	Mode       player.VisualMode
	FPS        int
	SeekStep   time.Duration
	VolumeStep float64
}

// DefaultConfig returns 20 fps with ±5s seeks and ±5% volume steps.
func DefaultConfig() Config {
	return Config{
		FPS:        20,
		SeekStep:   5 * time.Second,
		VolumeStep: 0.05,
	}
}

type tickMsg time.Time

// Model is the Bubbletea model for the player TUI.
type Model struct {
	engine   Engine
	analyzer *spectrum.Analyzer // nil unless in spectrum mode
	keys     keyMap
	cfg      Config
	filename string
	waveform player.Waveform
	status   player.Status
	bars     []float64
	err      error
	quitting bool
	width    int
	height   int
}

// NewModel creates a Model wired to the given engine. analyzer may be nil;
// it is only drawn in spectrum mode.
func NewModel(e Engine, analyzer *spectrum.Analyzer, cfg Config) Model {
	def := DefaultConfig()
	cfg.FPS = lo.Clamp(cfg.FPS, 1, 60)
	if cfg.SeekStep <= 0 {
		cfg.SeekStep = def.SeekStep
	}
	if cfg.VolumeStep <= 0 {
		cfg.VolumeStep = def.VolumeStep
	}
	if cfg.Mode != player.ModeSpectrum {
		analyzer = nil
	}

	name := filepath.Base(cfg.Path)
	if cfg.Path == "" {
		name = "Unknown"
	}

	return Model{
		engine:   e,
		analyzer: analyzer,
		keys:     defaultKeyMap(),
		cfg:      cfg,
		filename: name,
		waveform: e.Waveform(),
		status:   e.Status(),
		width:    80,
		height:   24,
	}
}

// Init starts the frame timer and requests the terminal size.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tickCmd(), tea.WindowSize())
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.cfg.FPS), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages: key presses, frame ticks, and window resizes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.apply(m.keys.action(msg, m.cfg.SeekStep, m.cfg.VolumeStep))
		m.status = m.engine.Status()
		if m.quitting {
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		m.status = m.engine.Status()
		if m.analyzer != nil {
			m.analyzer.Update()
			m.bars = m.analyzer.Bars()
		}
		if m.status.Finished {
			slog.Info("track finished", "file", m.filename)
			m.quitting = true
			return m, tea.Quit
		}
		return m, m.tickCmd()
	}

	return m, nil
}

// apply performs a decoded action on the engine.
func (m *Model) apply(a Action) {
	var err error
	switch a.Kind {
	case Quit:
		m.quitting = true
	case PlayPauseToggle:
		m.engine.TogglePause()
	case Restart:
		err = m.engine.Restart()
	case SeekForward:
		err = m.engine.Seek(a.Seek)
	case SeekBackward:
		err = m.engine.Seek(-a.Seek)
	case VolumeUp:
		m.engine.AdjustVolume(a.Volume)
	case VolumeDown:
		m.engine.AdjustVolume(-a.Volume)
	}
	if err != nil {
		slog.Error("player control failed", "action", a.Kind, "error", err)
		m.err = err
	}
}

// Err returns the last control error, if any.
func (m Model) Err() error { return m.err }
