package mpris

import (
	"context"

	"github.com/llehouerou/liveradio/internal/playback"
)

// Player is the part of the synchronizer media keys drive. The adapter
// reads snapshots on demand instead of subscribing, so it never keeps
// audio alive on its own.
type Player interface {
	Snapshot() playback.Snapshot
	TogglePlay(ctx context.Context) error
	SetVolume(level float64)
}

// Verify the synchronizer satisfies Player at compile time.
var _ Player = (*playback.Synchronizer)(nil)
