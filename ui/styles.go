package ui

import "github.com/charmbracelet/lipgloss"

// Color palette using standard ANSI terminal colors (0-15).
// These adapt to the user's terminal theme.
var (
	colorBorder  = lipgloss.ANSIColor(8)  // bright black (dark gray)
	colorTitle   = lipgloss.ANSIColor(13) // bright magenta
	colorText    = lipgloss.ANSIColor(7)  // white (light gray)
	colorDim     = lipgloss.ANSIColor(8)  // bright black (dark gray)
	colorAccent  = lipgloss.ANSIColor(11) // bright yellow
	colorPlaying = lipgloss.ANSIColor(14) // bright cyan
	colorPaused  = lipgloss.ANSIColor(11) // bright yellow
	colorName    = lipgloss.ANSIColor(14) // bright cyan

	// Spectrum peaks and the low/high ends of the band gradient
	colorPeak      = lipgloss.ANSIColor(9)  // bright red
	colorBassMid   = lipgloss.ANSIColor(13) // bright magenta
	colorTrebleMid = lipgloss.ANSIColor(10) // bright green

	// Volume gauge: loud -> quiet
	colorVolHigh = lipgloss.ANSIColor(10) // bright green
	colorVolMid  = lipgloss.ANSIColor(11) // bright yellow
	colorVolLow  = lipgloss.ANSIColor(9)  // bright red
)

// Lip Gloss styles
var (
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(colorTitle).
			Bold(true)

	nameStyle = lipgloss.NewStyle().
			Foreground(colorName).
			Bold(true)

	timeStyle = lipgloss.NewStyle().
			Foreground(colorText)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	keyStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.ANSIColor(9)) // bright red
)

// Pre-built per-cell styles to avoid allocating while drawing bars.
var (
	playingStyle = lipgloss.NewStyle().Foreground(colorPlaying)
	pausedStyle  = lipgloss.NewStyle().Foreground(colorPaused)
	peakStyle    = lipgloss.NewStyle().Foreground(colorPeak)
	bassStyle    = lipgloss.NewStyle().Foreground(colorBassMid)
	trebleStyle  = lipgloss.NewStyle().Foreground(colorTrebleMid)
	volHighStyle = lipgloss.NewStyle().Foreground(colorVolHigh)
	volMidStyle  = lipgloss.NewStyle().Foreground(colorVolMid)
	volLowStyle  = lipgloss.NewStyle().Foreground(colorVolLow)
)
