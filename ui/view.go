package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"apz/player"
)

const (
	frameOverhead = 4  // border (2) + padding (2×1)
	minPanelWidth = 24 // narrowest usable inner width
	chromeRows    = 14 // title, progress, volume, help, spacers and border
)

var (
	seekFillStyle = lipgloss.NewStyle().Foreground(colorPlaying)
	seekDimStyle  = lipgloss.NewStyle().Foreground(colorDim)
)

// pw returns the usable inner panel width.
func (m Model) pw() int {
	return max(m.width-frameOverhead, minPanelWidth)
}

// vizHeight returns the row count of the visualization area for the mode.
func (m Model) vizHeight() int {
	switch m.cfg.Mode {
	case player.ModeSpectrum:
		return max(m.height-chromeRows, 8)
	case player.ModeEnhancedWaveform:
		return 7
	default:
		return 3
	}
}

// View renders the full TUI frame.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.renderTitle(),
		"",
		m.renderVisualization(),
		"",
		m.renderProgress(),
		m.renderVolume(),
		"",
		m.renderHelp(),
	}
	if m.err != nil {
		sections = append(sections, "", errorStyle.Render(m.err.Error()))
	}

	return frameStyle.Render(strings.Join(sections, "\n"))
}

func (m Model) renderTitle() string {
	var glyph string
	switch m.status.State {
	case player.Playing:
		glyph = playingStyle.Bold(true).Render("▶")
	case player.Paused:
		glyph = pausedStyle.Bold(true).Render("⏸")
	default:
		glyph = dimStyle.Render("■")
	}

	head := titleStyle.Render("APZ") + "  " + glyph + " "
	room := m.pw() - lipgloss.Width(head)
	name := runewidth.Truncate(m.filename, max(room, 1), "…")
	return head + nameStyle.Render(name)
}

func (m Model) renderVisualization() string {
	w, h := m.pw(), m.vizHeight()
	switch m.cfg.Mode {
	case player.ModeSpectrum:
		return renderSpectrum(m.bars, w, h, m.status.State)
	case player.ModeEnhancedWaveform:
		return renderEnhancedWaveform(m.waveform, w, h, m.progress(), m.status.State)
	default:
		return renderSimpleWaveform(m.waveform, w, h, m.status.State)
	}
}

// progress returns position/duration in [0, 1].
func (m Model) progress() float64 {
	if m.status.Duration <= 0 {
		return 0
	}
	return min(float64(m.status.Position)/float64(m.status.Duration), 1)
}

func (m Model) renderProgress() string {
	label := fmt.Sprintf("%s / %s",
		formatDuration(m.status.Position), formatDuration(m.status.Duration))
	barW := max(m.pw()-lipgloss.Width(label)-1, 1)
	filled := int(m.progress() * float64(barW-1))

	bar := seekFillStyle.Render(strings.Repeat("━", filled)) +
		seekFillStyle.Render("●") +
		seekDimStyle.Render(strings.Repeat("━", barW-filled-1))
	return bar + " " + timeStyle.Render(label)
}

func (m Model) renderVolume() string {
	v := m.status.Volume
	label := fmt.Sprintf("%3d%%", int(v*100+0.5))

	style := volLowStyle
	switch {
	case v > 0.7:
		style = volHighStyle
	case v > 0.3:
		style = volMidStyle
	}

	prefix := labelStyle.Render("VOL ")
	barW := max(m.pw()-lipgloss.Width(prefix)-lipgloss.Width(label)-1, 1)
	filled := int(v * float64(barW))
	bar := style.Render(strings.Repeat("█", filled)) +
		dimStyle.Render(strings.Repeat("░", barW-filled))
	return prefix + bar + " " + style.Render(label)
}

func (m Model) renderHelp() string {
	seek := int(m.cfg.SeekStep / time.Second)
	vol := int(m.cfg.VolumeStep*100 + 0.5)
	return keyStyle.Render("[Space]") + helpStyle.Render(" play/pause  ") +
		keyStyle.Render("[Q]") + helpStyle.Render(" quit  ") +
		keyStyle.Render("[R]") + helpStyle.Render(" restart") + "\n" +
		keyStyle.Render("[←/→]") + helpStyle.Render(fmt.Sprintf(" seek ±%ds  ", seek)) +
		keyStyle.Render("[↑/↓]") + helpStyle.Render(fmt.Sprintf(" volume ±%d%%", vol))
}

// formatDuration renders d as MM:SS, truncating partial seconds.
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
