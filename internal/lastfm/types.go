package lastfm

import "time"

// ScrobbleTrack contains track metadata for scrobbling.
type ScrobbleTrack struct {
	Artist      string
	Track       string
	Album       string
	AlbumArtist string
	Duration    time.Duration
	Timestamp   time.Time // When the listener started hearing it
}

// ScrobbleState tracks the scrobbling status of the track on air.
type ScrobbleState struct {
	Key            string        // Song key (for dedup)
	Track          ScrobbleTrack // Timestamp is set once playback is heard
	Listened       time.Duration // Time actually heard while playing
	Scrobbled      bool          // Whether this track has been scrobbled
	NowPlayingSent bool          // Whether now playing was sent
}
