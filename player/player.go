// Package player provides the audio engine: decoding, the playback pipeline
// with transport controls, a sample tap for live visualization and the
// precomputed whole-track waveform.
package player

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/samber/lo"
)

// State is the transport state of a Player.
type State int

const (
	Playing State = iota
	Paused
	Stopped
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "stopped"
	}
}

// VisualMode selects which visualization the engine prepares for. It is
// fixed when the Player is opened.
type VisualMode int

const (
	ModeSimpleWaveform VisualMode = iota
	ModeEnhancedWaveform
	ModeSpectrum
)

func (m VisualMode) String() string {
	switch m {
	case ModeEnhancedWaveform:
		return "enhanced-waveform"
	case ModeSpectrum:
		return "spectrum"
	default:
		return "simple-waveform"
	}
}

// Options configures Open.
type Options struct {
	Mode          VisualMode
	SampleRate    beep.SampleRate // output rate; sources are resampled to it
	BufferSize    int             // SampleBuffer capacity in spectrum mode
	WaveformWidth int
	Volume        float64 // initial linear volume in [0, 1]
	Output        Output  // defaults to the system speaker
}

// DefaultOptions returns the options used by the CLI.
func DefaultOptions() Options {
	return Options{
		Mode:          ModeSimpleWaveform,
		SampleRate:    beep.SampleRate(44100),
		BufferSize:    DefaultBufferSize,
		WaveformWidth: DefaultWaveformWidth,
		Volume:        1,
	}
}

// Status is a consistent snapshot of everything the UI reads each frame.
type Status struct {
	Position time.Duration
	Duration time.Duration
	Volume   float64
	State    State
	Finished bool
}

// Player is the audio engine managing the playback pipeline:
//
//	[Decode] -> [Resample] -> [Tap] -> [Gain] -> [Ctrl] -> [Output]
//
// The tap sits before the gain stage, so visualization sees the source
// signal and volume changes do not scale the spectrum. Control methods and
// queries are safe to call from any goroutine; they take p.mu first and the
// output lock second. The end-of-track callback runs on the audio goroutine
// with the output lock held and only touches atomics.
type Player struct {
	mu       sync.Mutex
	path     string
	opts     Options
	out      Output
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	gain     *effects.Gain
	buf      *SampleBuffer
	waveform Waveform
	volume   float64
	state    State
	closed   bool

	finished atomic.Bool
	// generation is bumped whenever the pipeline is rebuilt, so callbacks
	// from a discarded pipeline are ignored.
	generation atomic.Uint64
}

// Open decodes path, precomputes its waveform, acquires the output and
// starts playing. Failures are *LoadError values matching one of
// ErrFileUnreadable, ErrUnsupportedFormat or ErrOutputUnavailable.
func Open(path string, opts Options) (*Player, error) {
	def := DefaultOptions()
	if opts.SampleRate <= 0 {
		opts.SampleRate = def.SampleRate
	}
	if opts.BufferSize <= 0 {
		opts.BufferSize = def.BufferSize
	}
	if opts.WaveformWidth <= 0 {
		opts.WaveformWidth = def.WaveformWidth
	}
	if opts.Output == nil {
		opts.Output = NewSpeakerOutput()
	}

	streamer, format, err := decodeFile(path)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	buckets, err := precomputeWaveform(streamer, opts.WaveformWidth)
	if err == nil {
		err = streamer.Seek(0)
	}
	if err != nil {
		streamer.Close()
		return nil, loadError(path, ErrUnsupportedFormat, fmt.Errorf("waveform: %w", err))
	}
	slog.Debug("waveform precomputed", "path", path, "buckets", len(buckets), "took", time.Since(start))

	if err := opts.Output.Init(opts.SampleRate); err != nil {
		streamer.Close()
		return nil, loadError(path, ErrOutputUnavailable, err)
	}

	p := &Player{
		path:     path,
		opts:     opts,
		out:      opts.Output,
		streamer: streamer,
		format:   format,
		waveform: Waveform{Buckets: buckets, Enhanced: opts.Mode == ModeEnhancedWaveform},
		volume:   lo.Clamp(opts.Volume, 0, 1),
		state:    Playing,
	}
	if opts.Mode == ModeSpectrum {
		p.buf = NewSampleBuffer(opts.BufferSize)
	}

	p.mu.Lock()
	p.startLocked()
	p.mu.Unlock()

	slog.Info("track loaded",
		"path", path,
		"sample_rate", int(format.SampleRate),
		"channels", format.NumChannels,
		"duration", p.Duration(),
		"mode", opts.Mode.String(),
	)
	return p, nil
}

// startLocked builds a fresh pipeline around the decoder at its current
// position and hands it to the output. Must be called with p.mu held and
// without the output lock.
func (p *Player) startLocked() {
	gen := p.generation.Add(1)
	p.finished.Store(false)

	var s beep.Streamer = p.streamer
	if p.format.SampleRate != p.opts.SampleRate {
		s = beep.Resample(4, p.format.SampleRate, p.opts.SampleRate, s)
	}
	if p.buf != nil {
		s = NewTap(s, p.buf)
	}
	p.gain = &effects.Gain{Streamer: s, Gain: p.volume - 1}
	p.ctrl = &beep.Ctrl{Streamer: p.gain, Paused: p.state != Playing}

	p.out.Clear()
	p.out.Play(beep.Seq(p.ctrl, beep.Callback(func() {
		if p.generation.Load() == gen {
			p.finished.Store(true)
		}
	})))
}

// Path returns the file being played.
func (p *Player) Path() string { return p.path }

// Mode returns the visualization mode chosen at Open.
func (p *Player) Mode() VisualMode { return p.opts.Mode }

// Waveform returns the precomputed envelope. It must not be modified.
func (p *Player) Waveform() Waveform { return p.waveform }

// Samples returns the buffer fed by the tap, or nil outside spectrum mode.
func (p *Player) Samples() *SampleBuffer { return p.buf }

// Play resumes playback. It has no effect when already playing or stopped.
func (p *Player) Play() { p.setState(Playing) }

// Pause pauses playback. It has no effect when already paused or stopped.
func (p *Player) Pause() { p.setState(Paused) }

// TogglePause toggles between paused and playing states.
func (p *Player) TogglePause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch p.state {
	case Playing:
		p.setStateLocked(Paused)
	case Paused:
		p.setStateLocked(Playing)
	}
}

func (p *Player) setState(s State) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.setStateLocked(s)
}

func (p *Player) setStateLocked(s State) {
	if p.state == s || p.state == Stopped {
		return
	}
	p.out.Lock()
	p.ctrl.Paused = s != Playing
	p.out.Unlock()
	p.state = s
}

// Seek moves the playback position by d, clamped to [0, duration]. Seeking
// to or past the end finishes the track.
func (p *Player) Seek(d time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == Stopped {
		return nil
	}

	p.out.Lock()
	cur := p.streamer.Position()
	p.out.Unlock()

	target := lo.Clamp(cur+p.format.SampleRate.N(d), 0, p.streamer.Len())
	return p.seekLocked(target)
}

// seekLocked moves the decoder to sample position pos. A finished pipeline
// has been dropped by the output, so moving back from the end rebuilds it.
func (p *Player) seekLocked(pos int) error {
	if pos >= p.streamer.Len() {
		p.out.Lock()
		err := p.streamer.Seek(p.streamer.Len())
		p.out.Unlock()
		if err != nil {
			return fmt.Errorf("seek: %w", err)
		}
		if !p.finished.Swap(true) {
			slog.Info("seek reached end of track", "path", p.path)
		}
		return nil
	}

	p.out.Lock()
	err := p.streamer.Seek(pos)
	p.out.Unlock()
	if err != nil {
		return fmt.Errorf("seek: %w", err)
	}
	if p.finished.Load() {
		p.startLocked()
	}
	return nil
}

// Restart rewinds to the beginning and resumes playback.
func (p *Player) Restart() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == Stopped {
		return nil
	}
	p.setStateLocked(Playing)
	return p.seekLocked(0)
}

// SetVolume sets the linear volume, clamped to [0, 1].
func (p *Player) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.setVolumeLocked(v)
}

// AdjustVolume changes the volume by delta, clamped to [0, 1].
func (p *Player) AdjustVolume(delta float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.setVolumeLocked(p.volume + delta)
}

func (p *Player) setVolumeLocked(v float64) {
	p.volume = lo.Clamp(v, 0, 1)
	p.out.Lock()
	p.gain.Gain = p.volume - 1
	p.out.Unlock()
}

// Volume returns the current linear volume.
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// State returns the transport state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// IsFinished reports whether playback has reached the end of the track.
func (p *Player) IsFinished() bool {
	return p.finished.Load()
}

// Duration returns the total duration of the track.
func (p *Player) Duration() time.Duration {
	return p.format.SampleRate.D(p.streamer.Len())
}

// Position returns the current playback position, clamped to [0, duration].
func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.positionLocked()
}

func (p *Player) positionLocked() time.Duration {
	if p.finished.Load() {
		return p.Duration()
	}
	p.out.Lock()
	pos := p.streamer.Position()
	p.out.Unlock()
	return p.format.SampleRate.D(lo.Clamp(pos, 0, p.streamer.Len()))
}

// Status returns position, duration, volume, state and finished together so
// a caller never sees a mix of values from before and after a control change.
func (p *Player) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Status{
		Position: p.positionLocked(),
		Duration: p.Duration(),
		Volume:   p.volume,
		State:    p.state,
		Finished: p.finished.Load(),
	}
}

// Stop halts playback for good. The Player keeps answering queries.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == Stopped {
		return
	}
	p.generation.Add(1)
	p.out.Clear()
	p.state = Stopped
}

// Close stops playback, releases the output device and closes the file.
// It is safe to call more than once.
func (p *Player) Close() error {
	p.Stop()
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	outErr := p.out.Close()
	if err := p.streamer.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	slog.Info("player closed", "path", p.path, "finished", p.finished.Load())
	return outErr
}
