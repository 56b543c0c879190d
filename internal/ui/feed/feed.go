// Package feed turns playback subscriptions into bubbletea messages.
package feed

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/liveradio/internal/playback"
)

// Source hands out counted subscriptions. *playback.Synchronizer
// implements it.
type Source interface {
	Subscribe() *playback.Subscription
}

var _ Source = (*playback.Synchronizer)(nil)

// SnapshotMsg carries a snapshot for the component owning Sub.
type SnapshotMsg struct {
	Sub      *playback.Subscription
	Snapshot playback.Snapshot
}

// ClosedMsg reports that Sub was unsubscribed or its synchronizer closed.
type ClosedMsg struct {
	Sub *playback.Subscription
}

// Wait returns a command that blocks until sub delivers a snapshot or is
// closed. Components re-issue it after each SnapshotMsg they own.
func Wait(sub *playback.Subscription) tea.Cmd {
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case snap := <-sub.Updates:
			return SnapshotMsg{Sub: sub, Snapshot: snap}
		case <-sub.Done:
			return ClosedMsg{Sub: sub}
		}
	}
}
