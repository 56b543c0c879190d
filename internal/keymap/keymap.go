package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string // as reported by tea.KeyMsg.String()
	Description string
	Context     string // "global", "playback", "view"
}

// All contains all key bindings.
var All = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionHelp, []string{"?"}, "Show help", "global"},

	// Playback
	{ActionPlayPause, []string{" "}, "Play/pause", "playback"},
	{ActionVolumeUp, []string{"+", "="}, "Volume up", "playback"},
	{ActionVolumeDown, []string{"-"}, "Volume down", "playback"},
	{ActionToggleMute, []string{"m"}, "Mute/unmute", "playback"},
	{ActionRefresh, []string{"r"}, "Refresh radio info", "playback"},

	// View
	{ActionTogglePlaylist, []string{"p"}, "Show/hide playlist", "view"},
	{ActionTogglePlayerDisplay, []string{"v"}, "Compact/expanded player", "view"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range All {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}

// displayKey returns the label shown for a key in help.
func displayKey(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

// KeyBinding converts b to a bubbles key binding for the help view.
func (b Binding) KeyBinding() key.Binding {
	label := ""
	if len(b.Keys) > 0 {
		label = displayKey(b.Keys[0])
		for _, k := range b.Keys[1:] {
			label += "/" + displayKey(k)
		}
	}
	return key.NewBinding(
		key.WithKeys(b.Keys...),
		key.WithHelp(label, b.Description),
	)
}

// Help implements help.KeyMap over All.
type Help struct{}

// ShortHelp returns the bindings shown in the one-line help.
func (Help) ShortHelp() []key.Binding {
	short := []Action{ActionPlayPause, ActionVolumeUp, ActionVolumeDown, ActionToggleMute, ActionTogglePlaylist, ActionHelp, ActionQuit}
	out := make([]key.Binding, 0, len(short))
	for _, a := range short {
		for _, b := range All {
			if b.Action == a {
				out = append(out, b.KeyBinding())
				break
			}
		}
	}
	return out
}

// FullHelp returns one column per context.
func (Help) FullHelp() [][]key.Binding {
	contexts := []string{"playback", "view", "global"}
	cols := make([][]key.Binding, 0, len(contexts))
	for _, c := range contexts {
		var col []key.Binding
		for _, b := range ByContext(c) {
			col = append(col, b.KeyBinding())
		}
		cols = append(cols, col)
	}
	return cols
}
