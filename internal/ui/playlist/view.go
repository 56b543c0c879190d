package playlist

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/liveradio/internal/icons"
	"github.com/llehouerou/liveradio/internal/nowplaying"
	"github.com/llehouerou/liveradio/internal/playback"
	"github.com/llehouerou/liveradio/internal/ui"
	"github.com/llehouerou/liveradio/internal/ui/render"
	"github.com/llehouerou/liveradio/internal/ui/styles"
)

// Render draws the panel for snap. now anchors the "played ago" labels.
func Render(snap playback.Snapshot, width, height int, now time.Time) string {
	if width < ui.MinPanelWidth || height < ui.MinPanelHeight {
		return ""
	}
	innerWidth := width - ui.BorderWidth
	listHeight := height - ui.PanelOverhead
	st := styles.T().S()

	header := render.TruncateAndPad("Playlist", innerWidth)
	if snap.Status != nil && snap.Status.IsOnline {
		header = render.Row("Playlist", st.Live.Render("on air"), innerWidth)
	}

	lines := body(snap, innerWidth, now)
	if len(lines) > listHeight {
		lines = lines[:listHeight]
	}
	for len(lines) < listHeight {
		lines = append(lines, "")
	}

	content := header + "\n" + render.Separator(innerWidth) + "\n" + strings.Join(lines, "\n")
	return styles.PanelStyle(false).Width(innerWidth).Render(content)
}

func body(snap playback.Snapshot, width int, now time.Time) []string {
	st := styles.T().S()
	status := snap.Status
	if status == nil {
		msg := "Waiting for radio information..."
		if snap.StatusError != "" {
			msg = snap.StatusError
		}
		return []string{st.Muted.Render(render.Truncate(msg, width))}
	}

	var lines []string
	if snap.StatusError != "" {
		lines = append(lines, st.Warning.Render(render.Truncate(snap.StatusError, width)), "")
	}

	lines = append(lines, st.Subtle.Render("Now playing"))
	lines = append(lines, nowPlayingLine(snap, width))

	if next := status.PlayingNext; next != nil && !next.Song.IsZero() {
		lines = append(lines, "", st.Subtle.Render("Up next"))
		lines = append(lines, st.Base.Render(render.Truncate(icons.FormatNext(songLabel(next.Song)), width)))
	}

	if len(status.SongHistory) > 0 {
		lines = append(lines, "", st.Subtle.Render("Recently played"))
		for _, h := range status.SongHistory {
			lines = append(lines, historyLine(h, width, now))
		}
	}
	return lines
}

func nowPlayingLine(snap playback.Snapshot, width int) string {
	st := styles.T().S()
	label := nowplaying.FallbackNowPlaying
	if song, ok := snap.CurrentSong(); ok {
		label = songLabel(song)
	}

	right := ""
	if d := snap.Duration(); d > 0 {
		right = st.Time.Render(render.Clock(snap.Elapsed) + " / " + render.Clock(d))
	}
	left := render.TruncateEllipsis(render.Sanitize(label), max(width-lipgloss.Width(right)-1, 1))
	return render.Row(st.Title.Render(left), right, width)
}

func historyLine(h nowplaying.HistoryTrack, width int, now time.Time) string {
	st := styles.T().S()

	right := ""
	if h.PlayedAt > 0 {
		right = st.Subtle.Render(humanize.RelTime(h.PlayedTime(), now, "ago", "from now"))
	}
	label := icons.FormatHistory(songLabel(h.Song))
	left := render.TruncateEllipsis(render.Sanitize(label), max(width-lipgloss.Width(right)-1, 1))
	return render.Row(st.Muted.Render(left), right, width)
}

func songLabel(s nowplaying.Song) string {
	return s.Display(nowplaying.FallbackUnknown)
}
