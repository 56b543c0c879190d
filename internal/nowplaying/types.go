package nowplaying

import "time"

// Display fallbacks when the station sends no artist or title.
const (
	FallbackNowPlaying = "Music playing..."
	FallbackUnknown    = "Unknown track"
)

// Status is the station's "now playing" document.
type Status struct {
	Station     Station        `json:"station"`
	Listeners   Listeners      `json:"listeners"`
	Live        Live           `json:"live"`
	NowPlaying  CurrentTrack   `json:"now_playing"`
	PlayingNext *NextTrack     `json:"playing_next"`
	SongHistory []HistoryTrack `json:"song_history"`
	IsOnline    bool           `json:"is_online"`
}

// Station describes the broadcasting station.
type Station struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Shortcode   string `json:"shortcode"`
	Description string `json:"description"`
	ListenURL   string `json:"listen_url"`
	IsPublic    bool   `json:"is_public"`
}

// Listeners holds the station's audience counters.
type Listeners struct {
	Total   int `json:"total"`
	Unique  int `json:"unique"`
	Current int `json:"current"`
}

// Live describes a live DJ broadcast, if any.
type Live struct {
	IsLive         bool    `json:"is_live"`
	StreamerName   string  `json:"streamer_name"`
	BroadcastStart *string `json:"broadcast_start"`
	Art            *string `json:"art"`
}

// Song is the metadata of one track.
type Song struct {
	ID     string `json:"id"`
	Art    string `json:"art"`
	Artist string `json:"artist"`
	Title  string `json:"title"`
	Album  string `json:"album"`
	Genre  string `json:"genre"`
}

// CurrentTrack is the track on air. Elapsed, Remaining and Duration are
// whole seconds; PlayedAt is a unix timestamp.
type CurrentTrack struct {
	ShID      int    `json:"sh_id"`
	PlayedAt  int64  `json:"played_at"`
	Duration  int    `json:"duration"`
	Playlist  string `json:"playlist"`
	Streamer  string `json:"streamer"`
	IsRequest bool   `json:"is_request"`
	Song      Song   `json:"song"`
	Elapsed   int    `json:"elapsed"`
	Remaining int    `json:"remaining"`
}

// NextTrack is the track cued after the current one.
type NextTrack struct {
	CuedAt    int64  `json:"cued_at"`
	PlayedAt  int64  `json:"played_at"`
	Duration  int    `json:"duration"`
	Playlist  string `json:"playlist"`
	IsRequest bool   `json:"is_request"`
	Song      Song   `json:"song"`
}

// HistoryTrack is a track that already aired.
type HistoryTrack struct {
	ShID      int    `json:"sh_id"`
	PlayedAt  int64  `json:"played_at"`
	Duration  int    `json:"duration"`
	Playlist  string `json:"playlist"`
	Streamer  string `json:"streamer"`
	IsRequest bool   `json:"is_request"`
	Song      Song   `json:"song"`
}

// Display returns "Artist - Title", the bare title when the artist is
// unknown, or fallback when neither is set.
func (s Song) Display(fallback string) string {
	switch {
	case s.Artist != "" && s.Title != "":
		return s.Artist + " - " + s.Title
	case s.Artist != "":
		return s.Artist
	case s.Title != "":
		return s.Title
	default:
		return fallback
	}
}

// IsZero reports whether the song carries no metadata at all.
func (s Song) IsZero() bool {
	return s.ID == "" && s.Artist == "" && s.Title == ""
}

// Key identifies a song across polls. The station ID is preferred.
func (s Song) Key() string {
	if s.ID != "" {
		return s.ID
	}
	return s.Artist + "\x00" + s.Title
}

// DurationTime returns the track duration.
func (t CurrentTrack) DurationTime() time.Duration {
	return time.Duration(t.Duration) * time.Second
}

// StartedAt returns when the track went on air.
func (t CurrentTrack) StartedAt() time.Time {
	if t.PlayedAt <= 0 {
		return time.Time{}
	}
	return time.Unix(t.PlayedAt, 0)
}

// PlayedTime returns when the history entry aired.
func (t HistoryTrack) PlayedTime() time.Time {
	if t.PlayedAt <= 0 {
		return time.Time{}
	}
	return time.Unix(t.PlayedAt, 0)
}

// CurrentSong returns the song on air and whether one is known.
func (s *Status) CurrentSong() (Song, bool) {
	if s == nil || s.NowPlaying.Song.IsZero() {
		return Song{}, false
	}
	return s.NowPlaying.Song, true
}

// StationName returns the station name or fallback.
func (s *Status) StationName(fallback string) string {
	if s == nil || s.Station.Name == "" {
		return fallback
	}
	return s.Station.Name
}
