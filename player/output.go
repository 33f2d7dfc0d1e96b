package player

import (
	"context"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// Output is the audio sink at the end of the pipeline. Lock and Unlock guard
// every streamer the output is currently pulling from; control changes to
// those streamers must happen between them.
type Output interface {
	Init(sr beep.SampleRate) error
	Play(s beep.Streamer)
	Clear()
	Lock()
	Unlock()
	Close() error
}

// SpeakerOutput plays through the system audio device.
type SpeakerOutput struct {
	// Latency is the device buffer length.
	Latency time.Duration
}

// NewSpeakerOutput returns an Output backed by the beep speaker with a
// 100ms device buffer.
func NewSpeakerOutput() *SpeakerOutput {
	return &SpeakerOutput{Latency: time.Second / 10}
}

func (o *SpeakerOutput) Init(sr beep.SampleRate) error {
	return speaker.Init(sr, sr.N(o.Latency))
}

func (o *SpeakerOutput) Play(s beep.Streamer) { speaker.Play(s) }
func (o *SpeakerOutput) Clear()               { speaker.Clear() }
func (o *SpeakerOutput) Lock()                { speaker.Lock() }
func (o *SpeakerOutput) Unlock()              { speaker.Unlock() }

func (o *SpeakerOutput) Close() error {
	speaker.Clear()
	speaker.Close()
	return nil
}

// HeadlessOutput consumes audio without a device. Samples are pulled only
// when Advance is called, either directly or by Run on a real-time ticker.
type HeadlessOutput struct {
	mu     sync.Mutex
	sr     beep.SampleRate
	mixer  beep.Mixer
	buf    [][2]float64
	pulled int
	closed bool
}

// NewHeadlessOutput returns an Output that discards audio.
func NewHeadlessOutput() *HeadlessOutput {
	return &HeadlessOutput{buf: make([][2]float64, 512)}
}

func (o *HeadlessOutput) Init(sr beep.SampleRate) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sr = sr
	return nil
}

func (o *HeadlessOutput) Play(s beep.Streamer) {
	o.mu.Lock()
	o.mixer.Add(s)
	o.mu.Unlock()
}

func (o *HeadlessOutput) Clear() {
	o.mu.Lock()
	o.mixer.Clear()
	o.mu.Unlock()
}

func (o *HeadlessOutput) Lock()   { o.mu.Lock() }
func (o *HeadlessOutput) Unlock() { o.mu.Unlock() }

func (o *HeadlessOutput) Close() error {
	o.mu.Lock()
	o.mixer.Clear()
	o.closed = true
	o.mu.Unlock()
	return nil
}

// Advance pulls d worth of audio through every playing streamer.
func (o *HeadlessOutput) Advance(d time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed || o.sr == 0 {
		return
	}
	for left := o.sr.N(d); left > 0; {
		n := min(left, len(o.buf))
		o.mixer.Stream(o.buf[:n])
		o.pulled += n
		left -= n
	}
}

// Pulled returns the total number of frames consumed so far.
func (o *HeadlessOutput) Pulled() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.pulled
}

// Run advances the output in real time until ctx is done.
func (o *HeadlessOutput) Run(ctx context.Context) {
	const tick = 10 * time.Millisecond
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			o.Advance(tick)
		}
	}
}
