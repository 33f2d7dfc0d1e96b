package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ActionKind enumerates what a key press asks the player to do.
type ActionKind int

const (
	Continue ActionKind = iota
	Quit
	PlayPauseToggle
	Restart
	SeekForward
	SeekBackward
	VolumeUp
	VolumeDown
)

// Action is a decoded key press. Seek is used by the seek kinds and Volume
// by the volume kinds; both are magnitudes, the kind carries the direction.
type Action struct {
	Kind   ActionKind
	Seek   time.Duration
	Volume float64
}

type keyMap struct {
	Quit     key.Binding
	Toggle   key.Binding
	Restart  key.Binding
	Forward  key.Binding
	Backward key.Binding
	Louder   key.Binding
	Quieter  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:     key.NewBinding(key.WithKeys("q", "Q", "esc", "ctrl+c"), key.WithHelp("Q", "quit")),
		Toggle:   key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("Space", "play/pause")),
		Restart:  key.NewBinding(key.WithKeys("r", "R"), key.WithHelp("R", "restart")),
		Forward:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "seek")),
		Backward: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "seek")),
		Louder:   key.NewBinding(key.WithKeys("up", "k", "+", "="), key.WithHelp("↑", "volume")),
		Quieter:  key.NewBinding(key.WithKeys("down", "j", "-"), key.WithHelp("↓", "volume")),
	}
}

// action maps a key press to an Action, using the given step sizes.
func (k keyMap) action(msg tea.KeyMsg, seek time.Duration, volume float64) Action {
	switch {
	case key.Matches(msg, k.Quit):
		return Action{Kind: Quit}
	case key.Matches(msg, k.Toggle):
		return Action{Kind: PlayPauseToggle}
	case key.Matches(msg, k.Restart):
		return Action{Kind: Restart}
	case key.Matches(msg, k.Forward):
		return Action{Kind: SeekForward, Seek: seek}
	case key.Matches(msg, k.Backward):
		return Action{Kind: SeekBackward, Seek: seek}
	case key.Matches(msg, k.Louder):
		return Action{Kind: VolumeUp, Volume: volume}
	case key.Matches(msg, k.Quieter):
		return Action{Kind: VolumeDown, Volume: volume}
	}
	return Action{Kind: Continue}
}

func (k ActionKind) String() string {
	switch k {
	case Quit:
		return "quit"
	case PlayPauseToggle:
		return "toggle"
	case Restart:
		return "restart"
	case SeekForward:
		return "seek-forward"
	case SeekBackward:
		return "seek-backward"
	case VolumeUp:
		return "volume-up"
	case VolumeDown:
		return "volume-down"
	default:
		return "continue"
	}
}
