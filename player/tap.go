package player

import (
	"errors"
	"sync"

	"github.com/gopxl/beep/v2"
)

// ErrInsufficientData is returned by snapshot reads when the buffer holds
// fewer samples than requested.
var ErrInsufficientData = errors.New("insufficient data")

// DefaultBufferSize is the number of recent samples kept for visualization.
const DefaultBufferSize = 2048

// SampleBuffer is a bounded window over the most recently pushed samples.
// It has exactly one writer (the Tap, on the audio goroutine) and one reader
// (the spectrum analyzer, on the UI goroutine). The lock is held only for a
// single push or a single copy.
type SampleBuffer struct {
	mu   sync.Mutex
	data []float64 // grows up to 2*size, then the newest size samples are moved to the front
	size int
}

// NewSampleBuffer creates a SampleBuffer holding at most capacity samples.
// The backing array is allocated once, so pushes never allocate.
func NewSampleBuffer(capacity int) *SampleBuffer {
	capacity = max(capacity, 1)
	return &SampleBuffer{
		data: make([]float64, 0, 2*capacity),
		size: capacity,
	}
}

// Cap returns the fixed capacity of the buffer.
func (b *SampleBuffer) Cap() int { return b.size }

// Len returns the number of samples currently held, never more than Cap.
func (b *SampleBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.window())
}

// Push appends a single sample, evicting the oldest ones past capacity.
func (b *SampleBuffer) Push(sample float64) {
	b.mu.Lock()
	b.push(sample)
	b.mu.Unlock()
}

// PushFrames appends a mono mix of each stereo frame under a single lock.
func (b *SampleBuffer) PushFrames(frames [][2]float64) {
	b.mu.Lock()
	for _, f := range frames {
		b.push((f[0] + f[1]) / 2)
	}
	b.mu.Unlock()
}

// push must be called with b.mu held. Eviction happens in batches: once the
// backing array is full, the newest size samples are copied to the front,
// which keeps the amortized cost per sample constant.
func (b *SampleBuffer) push(sample float64) {
	if len(b.data) == cap(b.data) {
		n := copy(b.data, b.data[len(b.data)-b.size:])
		b.data = b.data[:n]
	}
	b.data = append(b.data, sample)
}

// window returns the live view of held samples, oldest first.
func (b *SampleBuffer) window() []float64 {
	if len(b.data) > b.size {
		return b.data[len(b.data)-b.size:]
	}
	return b.data
}

// Snapshot returns a copy of every held sample, oldest first.
func (b *SampleBuffer) Snapshot() []float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	w := b.window()
	out := make([]float64, len(w))
	copy(out, w)
	return out
}

// SnapshotFirst returns a copy of the n oldest held samples.
func (b *SampleBuffer) SnapshotFirst(n int) ([]float64, error) {
	out := make([]float64, n)
	if err := b.CopyFirst(out); err != nil {
		return nil, err
	}
	return out, nil
}

// CopyFirst fills dst with the len(dst) oldest held samples. It fails with
// ErrInsufficientData, leaving dst untouched, when fewer are available.
func (b *SampleBuffer) CopyFirst(dst []float64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	w := b.window()
	if len(w) < len(dst) {
		return ErrInsufficientData
	}
	copy(dst, w)
	return nil
}

// Reset drops every held sample.
func (b *SampleBuffer) Reset() {
	b.mu.Lock()
	b.data = b.data[:0]
	b.mu.Unlock()
}

// Tap is a streamer wrapper that copies samples into a SampleBuffer for
// real-time FFT visualization. Samples pass through unchanged. It sits in
// the audio pipeline between the resampler and the volume stage, so the
// buffer sees the source signal regardless of volume.
type Tap struct {
	s    beep.Streamer
	buf  *SampleBuffer
	done bool
}

// NewTap wraps a streamer, feeding buf with a mono mix of everything it streams.
func NewTap(s beep.Streamer, buf *SampleBuffer) *Tap {
	return &Tap{s: s, buf: buf}
}

// Stream passes audio through while capturing a mono mix into the buffer.
// Once the wrapped streamer is drained the tap stays drained and stops writing.
func (t *Tap) Stream(samples [][2]float64) (int, bool) {
	if t.done {
		return 0, false
	}
	n, ok := t.s.Stream(samples)
	if n > 0 {
		t.buf.PushFrames(samples[:n])
	}
	if !ok {
		t.done = true
	}
	return n, ok
}

// Err returns the underlying streamer's error.
func (t *Tap) Err() error {
	return t.s.Err()
}

// Buffer returns the buffer the tap writes into.
func (t *Tap) Buffer() *SampleBuffer { return t.buf }
