package spectrum

import (
	"math"
	"testing"

	"apz/player"
)

func fill(buf *player.SampleBuffer, samples []float64) {
	for _, s := range samples {
		buf.Push(s)
	}
}

func TestAnalyzer_BinMapping(t *testing.T) {
	a := New(player.NewSampleBuffer(2048), DefaultConfig())

	if a.NumBars() != 50 {
		t.Fatalf("NumBars = %d, want 50", a.NumBars())
	}
	tests := []struct {
		bar  int
		want int
	}{
		{0, 0},
		{10, int(math.Floor(math.Pow(0.2, 1.3) * 1023))},
		{25, int(math.Floor(math.Pow(0.5, 1.3) * 1023))},
		{49, int(math.Floor(math.Pow(0.98, 1.3) * 1023))},
	}
	for _, tt := range tests {
		if got := a.Bin(tt.bar); got != tt.want {
			t.Errorf("Bin(%d) = %d, want %d", tt.bar, got, tt.want)
		}
	}
	for i := 1; i < a.NumBars(); i++ {
		if a.Bin(i) < a.Bin(i-1) {
			t.Errorf("bin mapping not monotonic at bar %d", i)
		}
		if a.Bin(i) > 1023 {
			t.Errorf("Bin(%d) = %d beyond last bin", i, a.Bin(i))
		}
	}
}

func TestAnalyzer_InsufficientDataKeepsBars(t *testing.T) {
	buf := player.NewSampleBuffer(2048)
	a := New(buf, DefaultConfig())

	if a.Update() {
		t.Error("Update reported a change on an empty buffer")
	}
	for i, v := range a.Bars() {
		if v != 0 {
			t.Fatalf("bar %d = %v before any data", i, v)
		}
	}

	fill(buf, tone(2048, 100, 1))
	if !a.Update() {
		t.Fatal("Update skipped a full window")
	}
	before := a.Bars()

	buf.Reset()
	fill(buf, tone(1000, 100, 1))
	for range 3 {
		if a.Update() {
			t.Fatal("Update ran on a partial window")
		}
	}
	after := a.Bars()
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("bar %d changed from %v to %v without data", i, before[i], after[i])
		}
	}
}

func TestAnalyzer_SilenceDecaysToZero(t *testing.T) {
	buf := player.NewSampleBuffer(2048)
	a := New(buf, DefaultConfig())

	fill(buf, tone(2048, 60, 1))
	for range 5 {
		a.Update()
	}

	fill(buf, make([]float64, 2048))
	for range 100 {
		a.Update()
	}
	for i, v := range a.Bars() {
		if v < 0 || v > 1e-9 {
			t.Errorf("bar %d = %v after silence, want ~0", i, v)
		}
	}
}

func TestAnalyzer_ToneLightsItsBar(t *testing.T) {
	cfg := DefaultConfig()
	for _, bar := range []int{5, 10, 30} {
		buf := player.NewSampleBuffer(cfg.WindowSize)
		a := New(buf, cfg)

		// A tone centred exactly on the bar's bin.
		fill(buf, tone(cfg.WindowSize, float64(a.Bin(bar)), 1))

		iterations := int(math.Ceil(1 / (1 - cfg.Smoothing)))
		for range iterations {
			a.Update()
		}

		bars := a.Bars()
		var others float64
		for i, v := range bars {
			if i != bar {
				others += v
			}
		}
		others /= float64(len(bars) - 1)
		if bars[bar] < 3*others {
			t.Errorf("bar %d = %v, want at least 3x the mean of the others (%v)", bar, bars[bar], others)
		}
		if bars[bar] <= 0 {
			t.Errorf("bar %d stayed dark", bar)
		}
	}
}

func TestAnalyzer_BassBoost(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Smoothing = 0
	buf := player.NewSampleBuffer(cfg.WindowSize)
	a := New(buf, cfg)

	bar := 10
	fill(buf, tone(cfg.WindowSize, float64(a.Bin(bar)), 1))
	a.Update()

	// A unit sine on bin k has magnitude N/2.
	want := float64(cfg.WindowSize) / 2 * (1 + cfg.BassBoost*(1-float64(bar)/float64(cfg.Bars)))
	if got := a.Bars()[bar]; math.Abs(got-want) > 1e-6*want {
		t.Errorf("bar %d = %v, want %v", bar, got, want)
	}
}

func TestNew_FallsBackToDefaults(t *testing.T) {
	a := New(player.NewSampleBuffer(16), Config{})
	if a.NumBars() != DefaultConfig().Bars {
		t.Errorf("NumBars = %d, want default", a.NumBars())
	}
	if got := a.BinFrequency(1, 44100); got != 44100.0/2048 {
		t.Errorf("BinFrequency(1) = %v", got)
	}
}

// tone returns n samples of a sine completing cycles periods over n samples,
// i.e. centred on FFT bin cycles for an n-point transform.
func tone(n int, cycles, amp float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = amp * math.Sin(2*math.Pi*cycles*float64(i)/float64(n))
	}
	return out
}
