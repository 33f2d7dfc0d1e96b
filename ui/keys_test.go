package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestKeyMap_Action(t *testing.T) {
	k := defaultKeyMap()
	seek, vol := 5*time.Second, 0.05

	tests := []struct {
		msg  tea.KeyMsg
		want Action
	}{
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, Action{Kind: PlayPauseToggle}},
		{runes("p"), Action{Kind: PlayPauseToggle}},
		{runes("q"), Action{Kind: Quit}},
		{tea.KeyMsg{Type: tea.KeyEsc}, Action{Kind: Quit}},
		{runes("R"), Action{Kind: Restart}},
		{tea.KeyMsg{Type: tea.KeyRight}, Action{Kind: SeekForward, Seek: seek}},
		{tea.KeyMsg{Type: tea.KeyLeft}, Action{Kind: SeekBackward, Seek: seek}},
		{tea.KeyMsg{Type: tea.KeyUp}, Action{Kind: VolumeUp, Volume: vol}},
		{runes("="), Action{Kind: VolumeUp, Volume: vol}},
		{tea.KeyMsg{Type: tea.KeyDown}, Action{Kind: VolumeDown, Volume: vol}},
		{runes("-"), Action{Kind: VolumeDown, Volume: vol}},
		{runes("z"), Action{Kind: Continue}},
		{tea.KeyMsg{Type: tea.KeyEnter}, Action{Kind: Continue}},
	}
	for _, tt := range tests {
		if got := k.action(tt.msg, seek, vol); got != tt.want {
			t.Errorf("action(%q) = %+v, want %+v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestActionKind_String(t *testing.T) {
	if got := SeekBackward.String(); got != "seek-backward" {
		t.Errorf("SeekBackward = %q", got)
	}
	if got := ActionKind(99).String(); got != "continue" {
		t.Errorf("unknown kind = %q", got)
	}
}
