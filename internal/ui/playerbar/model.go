package playerbar

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/liveradio/internal/playback"
	"github.com/llehouerou/liveradio/internal/ui/feed"
	"github.com/llehouerou/liveradio/internal/ui/styles"
)

// Model is the player bar component. It owns one counted subscription
// for as long as it is mounted.
type Model struct {
	sub      *playback.Subscription
	snap     playback.Snapshot
	mode     DisplayMode
	spinner  spinner.Model
	spinning bool
	width    int
}

// New mounts a player bar on src.
func New(src feed.Source, mode DisplayMode) Model {
	return Model{
		sub:  src.Subscribe(),
		mode: mode,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(styles.T().S().Muted),
		),
	}
}

// Init starts listening for snapshots.
func (m Model) Init() tea.Cmd {
	return feed.Wait(m.sub)
}

// Update handles snapshots for this component's subscription and drives
// the loading spinner.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case feed.SnapshotMsg:
		if msg.Sub != m.sub {
			return m, nil
		}
		m.snap = msg.Snapshot
		cmds := []tea.Cmd{feed.Wait(m.sub)}
		if m.snap.IsLoading && !m.spinning {
			m.spinning = true
			cmds = append(cmds, m.spinner.Tick)
		}
		return m, tea.Batch(cmds...)

	case feed.ClosedMsg:
		if msg.Sub == m.sub {
			m.sub = nil
		}
		return m, nil

	case spinner.TickMsg:
		if !m.snap.IsLoading {
			// Drop the tick to stop the animation
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the bar at the current width.
func (m Model) View() string {
	spin := ""
	if m.snap.IsLoading {
		spin = m.spinner.View()
	}
	return Render(NewState(m.snap, m.mode), m.width, spin)
}

// SetWidth sets the rendering width.
func (m *Model) SetWidth(width int) {
	m.width = width
}

// ToggleMode switches between compact and expanded display.
func (m *Model) ToggleMode() {
	if m.mode == ModeCompact {
		m.mode = ModeExpanded
	} else {
		m.mode = ModeCompact
	}
}

// Mode returns the current display mode.
func (m Model) Mode() DisplayMode {
	return m.mode
}

// Height returns the rendered height for the current mode.
func (m Model) Height() int {
	return Height(m.mode)
}

// Snapshot returns the last snapshot received.
func (m Model) Snapshot() playback.Snapshot {
	return m.snap
}

// Close releases the subscription.
func (m *Model) Close() {
	if m.sub != nil {
		m.sub.Unsubscribe()
		m.sub = nil
	}
}
