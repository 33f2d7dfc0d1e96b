// Package main is the entry point for the apz terminal audio player.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/GiGurra/boa/pkg/boa"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"apz/player"
	"apz/spectrum"
	"apz/ui"
)

type Params struct {
	Path       string  `pos:"true" optional:"true" help:"Audio file to play."`
	Visualizer bool    `short:"v" optional:"true" help:"Show a live spectrum analyzer instead of the waveform."`
	Enhanced   bool    `short:"e" optional:"true" help:"Draw the waveform two-sided with a playback cursor."`
	Volume     float64 `optional:"true" help:"Initial volume between 0 and 1." default:"1"`
	SeekStep   float64 `optional:"true" help:"Seconds to jump per seek key press." default:"5"`
	VolumeStep float64 `optional:"true" help:"Volume change per key press." default:"0.05"`
	Fps        int     `optional:"true" help:"Screen refresh rate." default:"20"`
	LogFile    string  `optional:"true" help:"Write debug logs to this file."`
	NoAudio    bool    `optional:"true" help:"Play silently on an internal clock instead of the sound device."`
}

// stdoutIsTerminal is checked before any audio starts.
var stdoutIsTerminal = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) }

func main() {
	boa.CmdT[Params]{
		Use:         "apz [file]",
		Short:       "Terminal audio player with waveform and spectrum visualization",
		Long:        "Play an audio file in the terminal. " + formatsLine(),
		ParamEnrich: boa.ParamEnricherCombine(boa.ParamEnricherBool, boa.ParamEnricherName, boa.ParamEnricherShort),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			os.Exit(run(params, os.Stdout, os.Stderr))
		},
	}.Run()
}

func run(params *Params, stdout, stderr io.Writer) int {
	if params.Path == "" {
		printUsage(stderr)
		return 1
	}

	closeLog, err := setupLogging(params.LogFile)
	if err != nil {
		fmt.Fprintf(stderr, "apz: cannot open log file: %v\n", err)
		return 1
	}
	defer closeLog()

	opts := playerOptions(params)
	var headless *player.HeadlessOutput
	if params.NoAudio {
		headless = player.NewHeadlessOutput()
		opts.Output = headless
	}

	if !stdoutIsTerminal() {
		fmt.Fprintln(stderr, "apz: stdout is not a terminal")
		return 1
	}

	p, err := player.Open(params.Path, opts)
	if err != nil {
		slog.Error("load failed", "path", params.Path, "error", err)
		fmt.Fprintf(stderr, "Failed to load audio file: %v\n", err)
		return 1
	}
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if headless != nil {
		go headless.Run(ctx)
	}

	var analyzer *spectrum.Analyzer
	if opts.Mode == player.ModeSpectrum {
		analyzer = spectrum.New(p.Samples(), spectrum.DefaultConfig())
	}

	cfg := ui.Config{
		Path:       params.Path,
		Mode:       opts.Mode,
		FPS:        params.Fps,
		SeekStep:   time.Duration(params.SeekStep * float64(time.Second)),
		VolumeStep: params.VolumeStep,
	}
	prog := tea.NewProgram(ui.NewModel(p, analyzer, cfg), tea.WithAltScreen(), tea.WithOutput(stdout))
	final, err := prog.Run()
	if err != nil {
		fmt.Fprintf(stderr, "apz: %v\n", err)
		return 1
	}
	if m, ok := final.(ui.Model); ok && m.Err() != nil {
		slog.Warn("session ended with a control error", "error", m.Err())
	}
	return 0
}

// playerOptions maps command-line flags onto player options. The spectrum
// flag wins over the enhanced waveform flag.
func playerOptions(params *Params) player.Options {
	opts := player.DefaultOptions()
	opts.Volume = params.Volume
	switch {
	case params.Visualizer:
		opts.Mode = player.ModeSpectrum
	case params.Enhanced:
		opts.Mode = player.ModeEnhancedWaveform
	}
	return opts
}

// setupLogging sends slog output to path, or discards everything below
// error level when path is empty. The TUI owns stdout and stderr.
func setupLogging(path string) (func(), error) {
	if path == "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError})))
		return func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return func() { f.Close() }, nil
}

func formatsLine() string {
	exts := player.SupportedFormats()
	names := make([]string, len(exts))
	for i, e := range exts {
		names[i] = strings.ToUpper(strings.TrimPrefix(e, "."))
	}
	return "Supported formats: " + strings.Join(names, ", ")
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: apz <audio-file> [-v] [-e]")
	fmt.Fprintln(w, formatsLine())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  -v, --visualizer   live spectrum analyzer")
	fmt.Fprintln(w, "  -e, --enhanced     two-sided waveform with playback cursor")
	fmt.Fprintln(w, "      --no-audio     play on an internal clock without a sound device")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Controls:")
	fmt.Fprintln(w, "  Space  play/pause    Q  quit    R  restart")
	fmt.Fprintln(w, "  ←/→    seek ±5s      ↑/↓  volume ±5%")
}
