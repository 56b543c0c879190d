//nolint:goconst // test cases intentionally repeat strings for readability
package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

func TestByContext(t *testing.T) {
	tests := []struct {
		name            string
		context         string
		expectNonEmpty  bool
		expectMinLength int
	}{
		{"global context", "global", true, 2},
		{"playback context", "playback", true, 5},
		{"view context", "view", true, 2},
		{"unknown context returns empty", "unknown", false, 0},
		{"empty context returns empty", "", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ByContext(tt.context)

			if tt.expectNonEmpty && len(result) == 0 {
				t.Errorf("ByContext(%q) returned empty, expected non-empty", tt.context)
			}

			if !tt.expectNonEmpty && len(result) != 0 {
				t.Errorf("ByContext(%q) returned %d items, expected empty", tt.context, len(result))
			}

			if len(result) < tt.expectMinLength {
				t.Errorf("ByContext(%q) returned %d items, expected at least %d", tt.context, len(result), tt.expectMinLength)
			}

			for _, binding := range result {
				if binding.Context != tt.context {
					t.Errorf("binding context = %q, want %q", binding.Context, tt.context)
				}
			}
		})
	}
}

func TestAll_EveryActionBound(t *testing.T) {
	actions := []Action{
		ActionQuit, ActionHelp, ActionPlayPause, ActionVolumeUp, ActionVolumeDown,
		ActionToggleMute, ActionRefresh, ActionTogglePlaylist, ActionTogglePlayerDisplay,
	}
	r := NewResolver(All)

	for _, a := range actions {
		if len(r.KeysFor(a)) == 0 {
			t.Errorf("action %q has no key", a)
		}
	}
}

func TestAll_NoKeyBoundTwice(t *testing.T) {
	seen := make(map[string]Action)
	for _, b := range All {
		for _, k := range b.Keys {
			if prev, ok := seen[k]; ok && prev != b.Action {
				t.Errorf("key %q bound to both %q and %q", k, prev, b.Action)
			}
			seen[k] = b.Action
		}
	}
}

func TestKeyBinding_Help(t *testing.T) {
	b := Binding{ActionPlayPause, []string{" "}, "Play/pause", "playback"}
	kb := b.KeyBinding()

	if got := kb.Help().Key; got != "space" {
		t.Errorf("help key = %q, want %q", got, "space")
	}
	if got := kb.Help().Desc; got != "Play/pause" {
		t.Errorf("help desc = %q, want %q", got, "Play/pause")
	}

	vol := Binding{ActionVolumeUp, []string{"+", "="}, "Volume up", "playback"}.KeyBinding()
	if got := vol.Help().Key; got != "+/=" {
		t.Errorf("help key = %q, want %q", got, "+/=")
	}
	if !key.Matches(keyString("="), vol) {
		t.Error("expected = to match volume up")
	}
}

type keyString string

func (k keyString) String() string { return string(k) }

func TestHelp_ImplementsKeyMap(t *testing.T) {
	var km help.KeyMap = Help{}

	if len(km.ShortHelp()) != 7 {
		t.Errorf("ShortHelp() returned %d bindings, want 7", len(km.ShortHelp()))
	}
	if len(km.FullHelp()) != 3 {
		t.Errorf("FullHelp() returned %d columns, want 3", len(km.FullHelp()))
	}
}
