package player

import (
	"errors"
	"testing"

	"github.com/gopxl/beep/v2"
)

func TestSampleBuffer_KeepsMostRecent(t *testing.T) {
	capacities := []int{1, 3, 16, 2048}
	pushes := []int{0, 1, 2, 15, 16, 17, 100, 5000}

	for _, c := range capacities {
		for _, n := range pushes {
			b := NewSampleBuffer(c)
			for i := range n {
				b.Push(float64(i))
				if b.Len() > c {
					t.Fatalf("cap=%d: length %d exceeds capacity after %d pushes", c, b.Len(), i+1)
				}
			}

			got := b.Snapshot()
			want := min(n, c)
			if len(got) != want {
				t.Errorf("cap=%d pushes=%d: len = %d, want %d", c, n, len(got), want)
				continue
			}
			for i, v := range got {
				if exp := float64(n - want + i); v != exp {
					t.Errorf("cap=%d pushes=%d: sample[%d] = %v, want %v", c, n, i, v, exp)
					break
				}
			}
		}
	}
}

func TestSampleBuffer_CopyFirst(t *testing.T) {
	b := NewSampleBuffer(8)
	for i := range 5 {
		b.Push(float64(i))
	}

	dst := []float64{-1, -1, -1, -1, -1, -1}
	if err := b.CopyFirst(dst); !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("CopyFirst with too few samples: err = %v, want ErrInsufficientData", err)
	}
	if dst[0] != -1 {
		t.Errorf("dst modified on failed copy: %v", dst)
	}

	got, err := b.SnapshotFirst(3)
	if err != nil {
		t.Fatalf("SnapshotFirst: %v", err)
	}
	for i, v := range got {
		if v != float64(i) {
			t.Errorf("SnapshotFirst[%d] = %v, want %v", i, v, float64(i))
		}
	}

	b.Reset()
	if b.Len() != 0 {
		t.Errorf("Len after Reset = %d", b.Len())
	}
}

func TestSampleBuffer_PushDoesNotAllocate(t *testing.T) {
	b := NewSampleBuffer(64)
	frames := make([][2]float64, 100)
	allocs := testing.AllocsPerRun(100, func() {
		b.PushFrames(frames)
		b.Push(1)
	})
	if allocs != 0 {
		t.Errorf("push allocated %v times per run", allocs)
	}
}

func TestTap_PassesSamplesThrough(t *testing.T) {
	src := make([][2]float64, 3000)
	for i := range src {
		src[i] = [2]float64{float64(i), -float64(i) / 2}
	}

	buf := NewSampleBuffer(1024)
	tap := NewTap(&sliceStreamer{frames: src}, buf)

	var out [][2]float64
	chunk := make([][2]float64, 512)
	for {
		n, ok := tap.Stream(chunk)
		out = append(out, chunk[:n]...)
		if !ok {
			break
		}
	}

	if len(out) != len(src) {
		t.Fatalf("streamed %d frames, want %d", len(out), len(src))
	}
	for i := range src {
		if out[i] != src[i] {
			t.Fatalf("frame %d altered: got %v, want %v", i, out[i], src[i])
		}
	}

	got := buf.Snapshot()
	if len(got) != 1024 {
		t.Fatalf("buffer len = %d, want 1024", len(got))
	}
	last := src[len(src)-1]
	if want := (last[0] + last[1]) / 2; got[len(got)-1] != want {
		t.Errorf("newest buffered sample = %v, want mono mix %v", got[len(got)-1], want)
	}
}

func TestTap_StopsWritingAfterExhaustion(t *testing.T) {
	buf := NewSampleBuffer(16)
	inner := &sliceStreamer{frames: make([][2]float64, 4)}
	tap := NewTap(inner, buf)

	chunk := make([][2]float64, 8)
	tap.Stream(chunk)
	if n, ok := tap.Stream(chunk); n != 0 || ok {
		t.Fatalf("drained tap returned (%d, %v)", n, ok)
	}

	inner.frames = make([][2]float64, 4) // source would produce again
	if n, ok := tap.Stream(chunk); n != 0 || ok {
		t.Errorf("tap resumed after end of stream: (%d, %v)", n, ok)
	}
	if buf.Len() != 4 {
		t.Errorf("buffer len = %d, want 4", buf.Len())
	}
}

// sliceStreamer streams a fixed slice of frames once.
type sliceStreamer struct {
	frames [][2]float64
	pos    int
}

func (s *sliceStreamer) Stream(samples [][2]float64) (int, bool) {
	if s.pos >= len(s.frames) {
		return 0, false
	}
	n := copy(samples, s.frames[s.pos:])
	s.pos += n
	return n, true
}

func (s *sliceStreamer) Err() error { return nil }

var _ beep.Streamer = (*sliceStreamer)(nil)
