package playerbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/liveradio/internal/icons"
	"github.com/llehouerou/liveradio/internal/playback"
	"github.com/llehouerou/liveradio/internal/ui"
	"github.com/llehouerou/liveradio/internal/ui/render"
	"github.com/llehouerou/liveradio/internal/ui/styles"
)

// expandedRows must match Height(ModeExpanded) - 2 for borders.
const expandedRows = 5

// renderExpanded renders station, track, progress and status rows.
func renderExpanded(s State, width int, spin string) string {
	innerWidth := max(width-2, 0)
	if innerWidth < ui.MinExpandedWidth {
		// Too narrow, fall back to compact
		return renderCompact(s, width, spin)
	}
	contentWidth := innerWidth - 2 // horizontal padding
	st := styles.T().S()

	lines := []string{
		stationLine(s, contentWidth),
		st.Title.Render(render.TruncateEllipsis(titleOrFallback(s), contentWidth)),
		st.Artist.Render(render.TruncateEllipsis(artistLine(s), contentWidth)),
		progressLine(s, contentWidth, spin),
		statusLine(s, contentWidth),
	}

	active := s.PlayState == playback.StatePlaying
	return styles.PanelStyle(active).
		Padding(0, 1).
		Width(innerWidth).
		Render(strings.Join(lines, "\n"))
}

func stationLine(s State, width int) string {
	st := styles.T().S()

	right := ""
	if s.Listeners > 0 {
		right = st.Muted.Render(humanize.Comma(int64(s.Listeners)) + " listening")
	}

	left := styles.StationName(icons.FormatStation(render.Sanitize(s.Station)))
	if s.Live != "" {
		left += "  " + st.Live.Render(icons.FormatLive(render.Sanitize(s.Live)))
	}
	if lipgloss.Width(left)+lipgloss.Width(right)+1 > width {
		left = styles.StationName(render.TruncateEllipsis(render.Sanitize(s.Station), max(width-lipgloss.Width(right)-1, 1)))
	}
	return render.Row(left, right, width)
}

func titleOrFallback(s State) string {
	if s.Title == "" {
		return s.Heading()
	}
	return render.Sanitize(s.Title)
}

func artistLine(s State) string {
	if s.Title == "" {
		return ""
	}
	parts := make([]string, 0, 2)
	if s.Artist != "" {
		parts = append(parts, s.Artist)
	}
	if s.Album != "" {
		parts = append(parts, s.Album)
	}
	return render.Sanitize(strings.Join(parts, " · "))
}

// progressLine renders: ▶  1:23  ━━━━━─────  3:58
func progressLine(s State, width int, spin string) string {
	st := styles.T().S()
	icon := statusIcon(s, spin)

	if s.Duration <= 0 {
		return icon + "  " + st.Muted.Render(stateLabel(s.PlayState))
	}

	pos := render.Clock(min(s.Elapsed, s.Duration))
	dur := render.Clock(s.Duration)
	fixed := lipgloss.Width(icon) + 2 + lipgloss.Width(pos) + 2 + 2 + lipgloss.Width(dur)
	barWidth := width - fixed
	if barWidth < 3 {
		// Too narrow for bar, just show times
		return icon + "  " + st.Time.Render(pos+" / "+dur)
	}

	bar := render.ProgressBar(progress(s), barWidth, st.ProgressFull, st.ProgressEmpty)
	return icon + "  " + st.Time.Render(pos) + "  " + bar + "  " + st.Time.Render(dur)
}

// statusLine shows the playback error, else the status error, else the
// playback state, with the volume on the right.
func statusLine(s State, width int) string {
	st := styles.T().S()
	right := RenderVolume(s.Volume, s.Muted)
	avail := max(width-lipgloss.Width(right)-1, 1)

	var left string
	switch {
	case s.Error != "":
		left = st.Error.Render(render.TruncateEllipsis(s.Error, avail))
	case s.StatusError != "":
		left = st.Warning.Render(render.TruncateEllipsis(s.StatusError, avail))
	default:
		left = st.Subtle.Render(stateLabel(s.PlayState))
	}
	return render.Row(left, right, width)
}

func stateLabel(state playback.State) string {
	switch state {
	case playback.StateLoading:
		return "Connecting..."
	case playback.StatePlaying:
		return "On air"
	case playback.StatePaused:
		return "Paused"
	case playback.StateErrored:
		return "Stopped"
	case playback.StateIdle:
		return "Press space to listen"
	}
	return ""
}
