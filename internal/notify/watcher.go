package notify

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/llehouerou/liveradio/internal/errmsg"
	"github.com/llehouerou/liveradio/internal/logging"
	"github.com/llehouerou/liveradio/internal/nowplaying"
	"github.com/llehouerou/liveradio/internal/playback"
)

// trackTimeout is how long a track notification stays visible (ms).
const trackTimeout = 5000

// Watcher announces each new track while the listener is playing. Each
// notification replaces the previous one.
type Watcher struct {
	notifier Notifier
	art      *ArtCache
	log      zerolog.Logger

	lastKey string
	lastID  uint32
}

// NewWatcher creates a watcher. art may be nil to skip cover images.
func NewWatcher(n Notifier, art *ArtCache) *Watcher {
	return &Watcher{
		notifier: n,
		art:      art,
		log:      logging.Component("notify"),
	}
}

// Run consumes snapshots from sub until it is closed or ctx is done.
func (w *Watcher) Run(ctx context.Context, sub *playback.Subscription) {
	defer sub.Unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return
		case <-sub.Done:
			return
		case snap := <-sub.Updates:
			w.handle(ctx, snap)
		}
	}
}

func (w *Watcher) handle(ctx context.Context, snap playback.Snapshot) {
	if !snap.IsPlaying {
		return
	}
	song, ok := snap.CurrentSong()
	if !ok || song.Key() == w.lastKey {
		return
	}
	w.lastKey = song.Key()

	n := trackNotification(song, snap.Status.StationName(""))
	n.Icon = w.art.Path(ctx, song.Art)
	n.ReplacesID = w.lastID

	id, err := w.notifier.Notify(n)
	if err != nil {
		w.log.Warn().Err(err).Str(logging.FieldOp, string(errmsg.OpNotify)).Msg("track notification")
		return
	}
	w.lastID = id
}

// trackNotification builds the notification for song.
func trackNotification(song nowplaying.Song, station string) Notification {
	title := song.Title
	if title == "" {
		title = song.Display(nowplaying.FallbackNowPlaying)
	}

	var body []string
	if song.Artist != "" && song.Title != "" {
		body = append(body, song.Artist)
	}
	if song.Album != "" {
		body = append(body, song.Album)
	}
	if station != "" {
		body = append(body, station)
	}

	return Notification{
		Title:   title,
		Body:    strings.Join(body, "\n"),
		Timeout: trackTimeout,
		Urgency: UrgencyLow,
	}
}
