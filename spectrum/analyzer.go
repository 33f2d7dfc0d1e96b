// Package spectrum turns a window of recent samples into a fixed number of
// smoothed frequency bars.
package spectrum

import (
	"math"
	"math/cmplx"

	"github.com/madelynnblue/go-dsp/fft"
	"github.com/samber/lo"
)

// Source provides the analysis window. CopyFirst fills dst with the oldest
// len(dst) samples it holds, or returns an error when it has fewer.
// *player.SampleBuffer satisfies it.
type Source interface {
	CopyFirst(dst []float64) error
}

// Config holds the analyzer's tunables.
type Config struct {
	WindowSize int     // samples per FFT
	Bars       int     // number of output bars
	Smoothing  float64 // weight kept from the previous frame, in [0, 1)
	Exponent   float64 // >1 packs low bars into bass bins
	BassBoost  float64 // extra gain on bar 0, falling linearly to none
}

// DefaultConfig returns the tuning used by the player UI.
func DefaultConfig() Config {
	return Config{
		WindowSize: 2048,
		Bars:       50,
		Smoothing:  0.7,
		Exponent:   1.3,
		BassBoost:  1.5,
	}
}

// Analyzer performs FFT analysis on a Source once per UI frame. It is not
// safe for concurrent use; only the Source is shared with the audio side.
type Analyzer struct {
	src    Source
	cfg    Config
	window []float64 // private copy, the FFT never runs under the source's lock
	mags   []float64
	bins   []int // bar -> spectrum bin
	bars   []float64
}

// New creates an Analyzer reading from src. Invalid config values fall back
// to their defaults.
func New(src Source, cfg Config) *Analyzer {
	def := DefaultConfig()
	if cfg.WindowSize < 2 {
		cfg.WindowSize = def.WindowSize
	}
	if cfg.Bars < 1 {
		cfg.Bars = def.Bars
	}
	if cfg.Smoothing < 0 || cfg.Smoothing >= 1 {
		cfg.Smoothing = def.Smoothing
	}
	if cfg.Exponent <= 0 {
		cfg.Exponent = def.Exponent
	}

	a := &Analyzer{
		src:    src,
		cfg:    cfg,
		window: make([]float64, cfg.WindowSize),
		mags:   make([]float64, cfg.WindowSize/2),
		bins:   make([]int, cfg.Bars),
		bars:   make([]float64, cfg.Bars),
	}
	last := len(a.mags) - 1
	for i := range a.bins {
		pos := math.Pow(float64(i)/float64(cfg.Bars), cfg.Exponent) * float64(last)
		a.bins[i] = lo.Clamp(int(math.Floor(pos)), 0, last)
	}
	return a
}

// Update copies the oldest WindowSize samples from the source and folds
// them into the bars. With too little data it does nothing and the bars
// keep their previous values. It reports whether the bars changed.
func (a *Analyzer) Update() bool {
	if err := a.src.CopyFirst(a.window); err != nil {
		return false
	}
	a.process(a.window)
	return true
}

// process runs the FFT on samples (len == WindowSize) and smooths the
// resulting bar amplitudes into a.bars.
func (a *Analyzer) process(samples []float64) {
	spectrum := fft.FFTReal(samples)
	for k := range a.mags {
		a.mags[k] = cmplx.Abs(spectrum[k])
	}

	n := float64(a.cfg.Bars)
	alpha := a.cfg.Smoothing
	for i, bin := range a.bins {
		boost := 1 + a.cfg.BassBoost*(1-float64(i)/n)
		amp := a.mags[bin] * boost
		a.bars[i] = a.bars[i]*alpha + amp*(1-alpha)
	}
}

// Bars returns a copy of the current bar amplitudes.
func (a *Analyzer) Bars() []float64 {
	out := make([]float64, len(a.bars))
	copy(out, a.bars)
	return out
}

// NumBars returns the fixed number of bars.
func (a *Analyzer) NumBars() int { return len(a.bars) }

// Bin returns the spectrum bin that bar i reads from.
func (a *Analyzer) Bin(i int) int { return a.bins[i] }

// BinFrequency returns the centre frequency in Hz of spectrum bin k at the
// given sample rate.
func (a *Analyzer) BinFrequency(k int, sampleRate float64) float64 {
	return float64(k) * sampleRate / float64(a.cfg.WindowSize)
}

// Reset zeroes all bars.
func (a *Analyzer) Reset() {
	clear(a.bars)
}
