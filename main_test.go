package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"apz/player"
)

func TestRun_NoPathPrintsUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run(&Params{}, &stdout, &stderr); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	out := stderr.String()
	for _, want := range []string{"Usage: apz", "MP3", "WAV", "FLAC", "OGG"} {
		if !strings.Contains(out, want) {
			t.Errorf("usage missing %q:\n%s", want, out)
		}
	}
	if stdout.Len() != 0 {
		t.Errorf("usage leaked to stdout: %q", stdout.String())
	}
}

func fakeTerminal(t *testing.T, isTTY bool) {
	t.Helper()
	prev := stdoutIsTerminal
	stdoutIsTerminal = func() bool { return isTTY }
	t.Cleanup(func() { stdoutIsTerminal = prev })
}

func TestRun_RefusesNonTerminalBeforeLoading(t *testing.T) {
	fakeTerminal(t, false)
	dir := t.TempDir()
	logPath := filepath.Join(dir, "apz.log")
	t.Cleanup(func() { _, _ = setupLogging("") })

	var stdout, stderr bytes.Buffer
	params := &Params{Path: filepath.Join(dir, "missing.flac"), LogFile: logPath, NoAudio: true}
	if code := run(params, &stdout, &stderr); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "not a terminal") {
		t.Errorf("stderr = %q", stderr.String())
	}
	if strings.Contains(stderr.String(), "Failed to load") {
		t.Error("file was opened before the terminal check")
	}
	data, _ := os.ReadFile(logPath)
	if strings.Contains(string(data), "load failed") {
		t.Errorf("player was opened:\n%s", data)
	}
}

func TestRun_LoadFailure(t *testing.T) {
	fakeTerminal(t, true)
	dir := t.TempDir()
	bad := filepath.Join(dir, "broken.wav")
	if err := os.WriteFile(bad, []byte("not a riff header"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing", filepath.Join(dir, "nope.mp3")},
		{"corrupt", bad},
		{"unsupported", filepath.Join(dir, "song.m4a")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(&Params{Path: tt.path, NoAudio: true}, &stdout, &stderr)
			if code != 1 {
				t.Errorf("exit code = %d, want 1", code)
			}
			if !strings.HasPrefix(stderr.String(), "Failed to load audio file: ") {
				t.Errorf("stderr = %q", stderr.String())
			}
		})
	}
}

func TestPlayerOptions(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		want   player.VisualMode
	}{
		{"default", Params{}, player.ModeSimpleWaveform},
		{"enhanced", Params{Enhanced: true}, player.ModeEnhancedWaveform},
		{"spectrum", Params{Visualizer: true}, player.ModeSpectrum},
		{"spectrum wins", Params{Visualizer: true, Enhanced: true}, player.ModeSpectrum},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := playerOptions(&tt.params)
			if opts.Mode != tt.want {
				t.Errorf("mode = %v, want %v", opts.Mode, tt.want)
			}
		})
	}

	if got := playerOptions(&Params{Volume: 0.3}).Volume; got != 0.3 {
		t.Errorf("volume = %v, want 0.3", got)
	}
}

func TestRun_LogsLoadFailureToFile(t *testing.T) {
	fakeTerminal(t, true)
	dir := t.TempDir()
	logPath := filepath.Join(dir, "apz.log")
	t.Cleanup(func() { _, _ = setupLogging("") })

	var stdout, stderr bytes.Buffer
	params := &Params{Path: filepath.Join(dir, "missing.flac"), LogFile: logPath, NoAudio: true}
	if code := run(params, &stdout, &stderr); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "missing.flac") {
		t.Errorf("log does not mention the failed file:\n%s", data)
	}
}

func TestSetupLogging_BadPath(t *testing.T) {
	if _, err := setupLogging(filepath.Join(t.TempDir(), "no", "such", "dir", "x.log")); err == nil {
		t.Error("expected an error for an unwritable log path")
	}
}
