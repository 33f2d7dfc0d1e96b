package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"apz/player"
)

// Unicode block elements for sparkline cell heights (9 levels including space)
var barBlocks = []string{" ", "▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"}

const (
	fullBlock  = "█"
	centreLine = "─"
)

// fitBuckets stretches or squeezes buckets to exactly width columns by
// nearest-neighbour lookup.
func fitBuckets(buckets []float64, width int) []float64 {
	if width <= 0 {
		return nil
	}
	if len(buckets) == 0 {
		return make([]float64, width)
	}
	return lo.Times(width, func(i int) float64 {
		return buckets[i*len(buckets)/width]
	})
}

// stateStyle is the base colour for the current transport state.
func stateStyle(s player.State) lipgloss.Style {
	if s == player.Playing {
		return playingStyle
	}
	return pausedStyle
}

// spectrumLayout returns the column width of each bar and each bar's
// height in rows. Heights are amplitude*rows/2, clamped to the area.
func spectrumLayout(bars []float64, width, rows int) (int, []int) {
	if len(bars) == 0 || width <= 0 || rows <= 0 {
		return 0, nil
	}
	barW := max(width/len(bars), 1)
	heights := lo.Map(bars, func(amp float64, _ int) int {
		return lo.Clamp(int(amp*float64(rows)*0.5), 0, rows)
	})
	return barW, heights
}

// spectrumCellStyle colours a cell by its height within the bar: the top
// fifth is red, the middle band shifts from magenta (bass) through the
// state colour to green (treble).
func spectrumCellStyle(bar, numBars, h, barHeight int, base lipgloss.Style) lipgloss.Style {
	hue := float64(bar) / float64(numBars)
	intensity := float64(h) / float64(max(barHeight, 1))
	switch {
	case intensity > 0.8:
		return peakStyle
	case intensity > 0.5 && hue < 0.33:
		return bassStyle
	case intensity > 0.5 && hue >= 0.66:
		return trebleStyle
	default:
		return base
	}
}

// renderSpectrum draws bars bottom-up into a width x rows block.
func renderSpectrum(bars []float64, width, rows int, state player.State) string {
	barW, heights := spectrumLayout(bars, width, rows)
	base := stateStyle(state)

	lines := make([]string, rows)
	for r := range rows {
		h := rows - r - 1 // height index of this row, 0 at the bottom
		var sb strings.Builder
		used := 0
		for i, bh := range heights {
			if used >= width {
				break
			}
			// the last bar is clipped to the panel edge
			w := min(barW, width-used)
			if h < bh {
				style := spectrumCellStyle(i, len(heights), h, bh, base)
				sb.WriteString(style.Render(strings.Repeat(fullBlock, w)))
			} else {
				sb.WriteString(strings.Repeat(" ", w))
			}
			used += w
		}
		sb.WriteString(strings.Repeat(" ", width-used))
		lines[r] = sb.String()
	}
	return strings.Join(lines, "\n")
}

// sparklineRows converts normalized values into rows of block glyphs, top
// row first, with eighth-cell resolution.
func sparklineRows(values []float64, rows int) []string {
	lines := make([]string, rows)
	for r := range rows {
		floor := float64(rows-r-1) * 8 // eighths below this row
		var sb strings.Builder
		for _, v := range values {
			eighths := lo.Clamp(int(v*float64(rows)*8)-int(floor), 0, 8)
			sb.WriteString(barBlocks[eighths])
		}
		lines[r] = sb.String()
	}
	return lines
}

// renderSimpleWaveform draws the whole-track envelope as a sparkline.
func renderSimpleWaveform(wf player.Waveform, width, rows int, state player.State) string {
	lines := sparklineRows(fitBuckets(wf.Buckets, width), rows)
	style := stateStyle(state)
	for i, l := range lines {
		lines[i] = style.Render(l)
	}
	return strings.Join(lines, "\n")
}

// mirroredLayout returns, per column, how many rows the envelope extends
// above and below the centre line, and the centre row index.
func mirroredLayout(values []float64, rows int) ([]int, int) {
	centre := rows / 2
	return lo.Map(values, func(v float64, _ int) int {
		return lo.Clamp(int(v*float64(centre)), 0, centre)
	}), centre
}

// renderEnhancedWaveform draws the envelope mirrored around a centre line.
// Columns up to the playback cursor use the state colour, the rest are dim.
// The centre row is always the axis line.
func renderEnhancedWaveform(wf player.Waveform, width, rows int, progress float64, state player.State) string {
	values := fitBuckets(wf.Buckets, width)
	extents, centre := mirroredLayout(values, rows)
	cursor := int(progress * float64(width))
	played := stateStyle(state)

	lines := make([]string, rows)
	for y := range rows {
		var sb strings.Builder
		for x, ext := range extents {
			var filled bool
			if y < centre {
				filled = centre-y <= ext
			} else {
				filled = y-centre < ext
			}
			style := dimStyle
			if x <= cursor {
				style = played
			}
			switch {
			case y == centre:
				sb.WriteString(dimStyle.Render(centreLine))
			case filled:
				sb.WriteString(style.Render(fullBlock))
			default:
				sb.WriteString(" ")
			}
		}
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}
