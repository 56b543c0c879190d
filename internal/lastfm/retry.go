package lastfm

import (
	"time"

	"github.com/llehouerou/liveradio/internal/state"
)

const (
	// RetryInterval is how often queued scrobbles are resubmitted.
	RetryInterval = 5 * time.Minute

	maxRetryAttempts = 10

	// Last.fm rejects scrobbles older than two weeks.
	pendingMaxAge = 14 * 24 * time.Hour
)

// Queue persists scrobbles that could not be submitted.
type Queue interface {
	AddPendingScrobble(s state.PendingScrobble) error
	GetPendingScrobbles() ([]state.PendingScrobble, error)
	DeletePendingScrobble(id int64) error
	UpdatePendingScrobbleAttempt(id int64, errMsg string) error
	DeleteOldPendingScrobbles(maxAge time.Duration) error
}

var _ Queue = (*state.Manager)(nil)

// RetryResult summarizes a pass over the pending queue.
type RetryResult struct {
	Succeeded int
	Failed    int
}

// RetryPending resubmits queued scrobbles. Entries that already failed
// maxRetryAttempts times are left alone until they age out.
func RetryPending(api API, queue Queue) (RetryResult, error) {
	pending, err := queue.GetPendingScrobbles()
	if err != nil {
		return RetryResult{}, err
	}

	var res RetryResult
	for i := range pending {
		p := &pending[i]
		if p.Attempts >= maxRetryAttempts {
			continue
		}

		if err := api.Scrobble(pendingTrack(p)); err != nil {
			res.Failed++
			_ = queue.UpdatePendingScrobbleAttempt(p.ID, err.Error())
			continue
		}
		res.Succeeded++
		_ = queue.DeletePendingScrobble(p.ID)
	}

	return res, nil
}

func pendingTrack(p *state.PendingScrobble) ScrobbleTrack {
	return ScrobbleTrack{
		Artist:    p.Artist,
		Track:     p.Track,
		Album:     p.Album,
		Duration:  time.Duration(p.DurationSecs) * time.Second,
		Timestamp: p.Timestamp,
	}
}

func pendingFromTrack(t ScrobbleTrack) state.PendingScrobble {
	return state.PendingScrobble{
		Artist:       t.Artist,
		Track:        t.Track,
		Album:        t.Album,
		DurationSecs: int(t.Duration.Seconds()),
		Timestamp:    t.Timestamp,
	}
}
