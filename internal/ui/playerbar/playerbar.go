package playerbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/liveradio/internal/icons"
	"github.com/llehouerou/liveradio/internal/nowplaying"
	"github.com/llehouerou/liveradio/internal/playback"
	"github.com/llehouerou/liveradio/internal/ui/render"
	"github.com/llehouerou/liveradio/internal/ui/styles"
)

// DisplayMode controls the player bar appearance.
type DisplayMode int

const (
	ModeCompact  DisplayMode = iota // Single-line view
	ModeExpanded                    // Station, track and status rows
)

// DefaultStation is shown until the first status arrives.
const DefaultStation = "Live Radio"

// State holds everything needed to render the player bar.
type State struct {
	Station     string
	Live        string // Streamer name while a DJ is live
	Listeners   int
	Title       string
	Artist      string
	Album       string
	Elapsed     int // seconds
	Duration    int // seconds, 0 if unknown
	PlayState   playback.State
	Volume      float64
	Muted       bool
	Error       string
	StatusError string
	DisplayMode DisplayMode
}

// Height returns the total height of the player bar for the given mode.
func Height(mode DisplayMode) int {
	if mode == ModeExpanded {
		return expandedRows + 2
	}
	return 3 // top border + content + bottom border
}

// NewState builds the render state from a synchronizer snapshot.
func NewState(snap playback.Snapshot, mode DisplayMode) State {
	s := State{
		Station:     snap.Status.StationName(DefaultStation),
		Elapsed:     snap.Elapsed,
		Duration:    snap.Duration(),
		PlayState:   snap.State,
		Volume:      snap.Volume,
		Muted:       snap.Muted,
		Error:       snap.Error,
		StatusError: snap.StatusError,
		DisplayMode: mode,
	}
	if st := snap.Status; st != nil {
		s.Listeners = st.Listeners.Current
		if st.Live.IsLive {
			s.Live = st.Live.StreamerName
		}
	}
	if song, ok := snap.CurrentSong(); ok {
		s.Title = song.Title
		s.Artist = song.Artist
		s.Album = song.Album
	}
	return s
}

// Heading returns "Artist - Title", or a fallback when the station sends
// no metadata.
func (s State) Heading() string {
	song := nowplaying.Song{Artist: s.Artist, Title: s.Title}
	return render.Sanitize(song.Display(nowplaying.FallbackNowPlaying))
}

// Render returns the player bar string for the given width. spin is the
// current spinner frame shown while loading.
func Render(s State, width int, spin string) string {
	if s.DisplayMode == ModeExpanded {
		return renderExpanded(s, width, spin)
	}
	return renderCompact(s, width, spin)
}

// statusIcon picks the indicator for the playback state.
func statusIcon(s State, spin string) string {
	switch s.PlayState {
	case playback.StateLoading:
		if spin != "" {
			return spin
		}
		return icons.Loading()
	case playback.StatePlaying:
		return icons.Play()
	case playback.StateErrored:
		return styles.T().S().Error.Render(icons.Error())
	case playback.StateIdle, playback.StatePaused:
		return icons.Pause()
	}
	return icons.Pause()
}

func timeLabel(s State) string {
	if s.Duration <= 0 {
		return ""
	}
	return render.Clock(s.Elapsed) + " / " + render.Clock(s.Duration)
}

func progress(s State) float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.Elapsed) / float64(s.Duration)
}

func renderCompact(s State, width int, spin string) string {
	// Calculate available width (subtract border and padding)
	innerWidth := max(width-6, 0)
	st := styles.T().S()

	const separator = "   "
	sepWidth := lipgloss.Width(separator)

	prefix := statusIcon(s, spin) + "  "
	right := RenderVolume(s.Volume, s.Muted)
	if t := timeLabel(s); t != "" {
		right = st.Time.Render(t) + separator + right
	}

	// Reserve room for a minimal bar when there is something to show
	minMiddle := 0
	if s.Error != "" || s.Duration > 0 {
		minMiddle = 10
	}
	avail := innerWidth - lipgloss.Width(prefix) - lipgloss.Width(right) - sepWidth*2 - minMiddle
	heading := ""
	if avail >= 4 {
		heading = render.TruncateEllipsis(s.Heading(), avail)
	}

	middleWidth := innerWidth - lipgloss.Width(prefix) - lipgloss.Width(heading) - lipgloss.Width(right) - sepWidth*2

	var content strings.Builder
	content.WriteString(prefix)
	content.WriteString(st.Title.Render(heading))
	content.WriteString(separator)
	if middleWidth > 0 {
		switch {
		case s.Error != "":
			msg := render.Pad(render.TruncateEllipsis(s.Error, middleWidth), middleWidth)
			content.WriteString(st.Error.Render(msg))
		case s.Duration > 0:
			content.WriteString(render.ProgressBar(progress(s), middleWidth, st.ProgressFull, st.ProgressEmpty))
		default:
			content.WriteString(strings.Repeat(" ", middleWidth))
		}
		content.WriteString(separator)
	}
	content.WriteString(right)

	active := s.PlayState == playback.StatePlaying
	return styles.PanelStyle(active).Padding(0, 2).Width(width - 2).Render(content.String())
}
