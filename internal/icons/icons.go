package icons

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the icon characters for the current style.
type Icons struct {
	Play    string
	Pause   string
	Loading string
	Error   string
	Volume  string
	Muted   string
	Radio   string
	Live    string
	Next    string
	History string
}

var (
	nerdIcons = Icons{
		Play:    "\uf04b",      // nf-fa-play
		Pause:   "\uf04c",      // nf-fa-pause
		Loading: "\U000f051f",  // nf-md-timer_sand
		Error:   "\uf071",      // nf-fa-warning
		Volume:  "\uf028",      // nf-fa-volume_up
		Muted:   "\ueee8",      // nf-fa-volume_xmark
		Radio:   "\U000f0439 ", // nf-md-radio
		Live:    "\uf111 ",     // nf-fa-circle
		Next:    "\U000f04ad ", // nf-md-skip_next
		History: "\U000f02da ", // nf-md-history
	}

	unicodeIcons = Icons{
		Play:    "▶",
		Pause:   "⏸",
		Loading: "⏳",
		Error:   "⚠",
		Volume:  "🔊",
		Muted:   "🔇",
		Radio:   "📻 ",
		Live:    "● ",
		Next:    "⏭ ",
		History: "🕘 ",
	}

	noneIcons = Icons{
		Play:    ">",
		Pause:   "||",
		Loading: "...",
		Error:   "!",
		Volume:  "vol",
		Muted:   "mute",
		Radio:   "",
		Live:    "",
		Next:    "",
		History: "",
	}

	// current holds the active icon set
	current = noneIcons
)

// Init initializes the icons based on the style.
// Call this once at startup with the config value.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleUnicode:
		current = unicodeIcons
	case StyleNone:
		current = noneIcons
	default:
		current = noneIcons
	}
}

// Play returns the playing indicator.
func Play() string {
	return current.Play
}

// Pause returns the paused indicator.
func Pause() string {
	return current.Pause
}

// Loading returns the buffering indicator.
func Loading() string {
	return current.Loading
}

// Error returns the playback error indicator.
func Error() string {
	return current.Error
}

// Volume returns the volume icon, or the mute icon when muted.
func Volume(muted bool) string {
	if muted {
		return current.Muted
	}
	return current.Volume
}

// FormatStation formats a station name with the appropriate icon.
func FormatStation(name string) string {
	if current == noneIcons {
		return name
	}
	return current.Radio + name
}

// FormatLive formats a live streamer name with the appropriate icon.
// The none style marks it with a "LIVE:" prefix instead.
func FormatLive(name string) string {
	if current == noneIcons {
		return "LIVE: " + name
	}
	return current.Live + name
}

// FormatNext formats the up-next entry.
func FormatNext(name string) string {
	if current == noneIcons {
		return "Next: " + name
	}
	return current.Next + name
}

// FormatHistory formats a recently played entry.
func FormatHistory(name string) string {
	if current == noneIcons {
		return name
	}
	return current.History + name
}
