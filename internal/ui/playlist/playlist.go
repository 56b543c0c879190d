// Package playlist renders the station's now playing, up next and recently
// played tracks.
package playlist

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/liveradio/internal/playback"
	"github.com/llehouerou/liveradio/internal/ui"
	"github.com/llehouerou/liveradio/internal/ui/feed"
)

// Model is the playlist panel. Like the player bar it holds its own
// counted subscription, released when the panel is hidden.
type Model struct {
	ui.Base
	sub  *playback.Subscription
	snap playback.Snapshot
	now  func() time.Time
}

// New mounts a playlist panel on src.
func New(src feed.Source) Model {
	return Model{
		sub: src.Subscribe(),
		now: time.Now,
	}
}

// Init starts listening for snapshots.
func (m Model) Init() tea.Cmd {
	return feed.Wait(m.sub)
}

// Update handles snapshots for this panel's subscription.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case feed.SnapshotMsg:
		if msg.Sub != m.sub {
			return m, nil
		}
		m.snap = msg.Snapshot
		return m, feed.Wait(m.sub)
	case feed.ClosedMsg:
		if msg.Sub == m.sub {
			m.sub = nil
		}
	}
	return m, nil
}

// View renders the panel at its current size.
func (m Model) View() string {
	return Render(m.snap, m.Width(), m.Height(), m.now())
}

// Active reports whether the panel still holds its subscription.
func (m Model) Active() bool {
	return m.sub != nil
}

// Close releases the subscription.
func (m *Model) Close() {
	if m.sub != nil {
		m.sub.Unsubscribe()
		m.sub = nil
	}
}
