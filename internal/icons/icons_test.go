//nolint:goconst // test cases intentionally repeat strings for readability
package icons

import (
	"strings"
	"testing"
)

func TestInit(t *testing.T) {
	tests := []struct {
		name          string
		style         string
		expectedStyle Style
	}{
		{"nerd style", "nerd", StyleNerd},
		{"unicode style", "unicode", StyleUnicode},
		{"none style", "none", StyleNone},
		{"empty string defaults to none", "", StyleNone},
		{"unknown style defaults to none", "invalid", StyleNone},
		{"case sensitive - NERD defaults to none", "NERD", StyleNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Init(tt.style)

			switch tt.expectedStyle {
			case StyleNerd:
				if current != nerdIcons {
					t.Error("expected nerd icons to be active")
				}
			case StyleUnicode:
				if current != unicodeIcons {
					t.Error("expected unicode icons to be active")
				}
			case StyleNone:
				if current != noneIcons {
					t.Error("expected none icons to be active")
				}
			}
		})
	}

	// Reset to default
	Init("none")
}

func TestPlaybackIcons(t *testing.T) {
	tests := []struct {
		style   string
		play    string
		pause   string
		loading string
	}{
		{"none", ">", "||", "..."},
		{"unicode", "▶", "⏸", "⏳"},
		{"nerd", "\uf04b", "\uf04c", "\U000f051f"},
	}

	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			Init(tt.style)
			defer Init("none")

			if got := Play(); got != tt.play {
				t.Errorf("Play() = %q, want %q", got, tt.play)
			}
			if got := Pause(); got != tt.pause {
				t.Errorf("Pause() = %q, want %q", got, tt.pause)
			}
			if got := Loading(); got != tt.loading {
				t.Errorf("Loading() = %q, want %q", got, tt.loading)
			}
		})
	}
}

func TestVolume(t *testing.T) {
	Init("unicode")
	defer Init("none")

	if got := Volume(false); got != "🔊" {
		t.Errorf("Volume(false) = %q", got)
	}
	if got := Volume(true); got != "🔇" {
		t.Errorf("Volume(true) = %q", got)
	}
}

func TestFormatStation(t *testing.T) {
	t.Run("none style returns name unchanged", func(t *testing.T) {
		Init("none")
		if got := FormatStation("Radio X"); got != "Radio X" {
			t.Errorf("FormatStation() = %q, want %q", got, "Radio X")
		}
	})

	t.Run("nerd style prefixes icon", func(t *testing.T) {
		Init("nerd")
		defer Init("none")
		got := FormatStation("Radio X")
		if !strings.HasSuffix(got, "Radio X") || got == "Radio X" {
			t.Errorf("FormatStation() = %q, want icon prefix", got)
		}
	})
}

func TestFormatLive(t *testing.T) {
	Init("none")
	if got := FormatLive("DJ Night"); got != "LIVE: DJ Night" {
		t.Errorf("FormatLive() = %q", got)
	}

	Init("unicode")
	defer Init("none")
	if got := FormatLive("DJ Night"); got != "● DJ Night" {
		t.Errorf("FormatLive() = %q", got)
	}
}

func TestFormatNextAndHistory(t *testing.T) {
	Init("none")
	if got := FormatNext("A - B"); got != "Next: A - B" {
		t.Errorf("FormatNext() = %q", got)
	}
	if got := FormatHistory("A - B"); got != "A - B" {
		t.Errorf("FormatHistory() = %q", got)
	}
}
