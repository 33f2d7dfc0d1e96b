package player

import (
	"math"

	"github.com/gopxl/beep/v2"
	"gonum.org/v1/gonum/floats"
)

// DefaultWaveformWidth is the number of buckets in a precomputed waveform.
const DefaultWaveformWidth = 512

// Waveform is the whole-track amplitude envelope. Buckets are normalized to
// [0, 1] with the loudest bucket at 1. It is computed once before playback
// and never modified afterwards.
type Waveform struct {
	Buckets  []float64
	Enhanced bool // draw two-sided around a centre line
}

// envelope reduces a stream of known length into a fixed number of peak
// buckets in a single pass. When total >= width, bucket b spans samples
// [b*total/width, (b+1)*total/width). A shorter input places sample i in
// bucket i*width/total and leaves the other buckets at zero.
type envelope struct {
	total   int
	width   int
	buckets []float64
	i       int
}

func newEnvelope(total, width int) *envelope {
	width = max(width, 1)
	return &envelope{
		total:   max(total, 0),
		width:   width,
		buckets: make([]float64, width),
	}
}

// add feeds the next sample's absolute amplitude.
func (e *envelope) add(amp float64) {
	if e.i >= e.total {
		return
	}
	var b int
	if e.total < e.width {
		b = e.i * e.width / e.total
	} else {
		// largest b with b*total/width <= i
		b = min(((e.i+1)*e.width-1)/e.total, e.width-1)
	}
	if amp > e.buckets[b] {
		e.buckets[b] = amp
	}
	e.i++
}

// addFrames feeds stereo frames, taking the louder channel of each.
func (e *envelope) addFrames(frames [][2]float64) {
	for _, f := range frames {
		e.add(max(math.Abs(f[0]), math.Abs(f[1])))
	}
}

// finish normalizes by the global peak. A silent or empty input yields all
// zeros.
func (e *envelope) finish() []float64 {
	if e.total == 0 {
		return e.buckets
	}
	peak := floats.Max(e.buckets)
	if peak <= 0 {
		return e.buckets
	}
	for i := range e.buckets {
		e.buckets[i] /= peak
	}
	return e.buckets
}

// Envelope summarizes samples into exactly width normalized peak buckets.
func Envelope(samples []float64, width int) []float64 {
	e := newEnvelope(len(samples), width)
	for _, s := range samples {
		e.add(math.Abs(s))
	}
	return e.finish()
}

// precomputeWaveform decodes the whole stream once and reduces it into
// width buckets. The streamer is left at its end; callers seek it back.
func precomputeWaveform(s beep.StreamSeeker, width int) ([]float64, error) {
	e := newEnvelope(s.Len(), width)
	chunk := make([][2]float64, 4096)
	for {
		n, ok := s.Stream(chunk)
		e.addFrames(chunk[:n])
		if !ok {
			break
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return e.finish(), nil
}
