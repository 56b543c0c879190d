package state

import (
	"time"

	"github.com/llehouerou/liveradio/internal/nowplaying"
)

// MaxHeardTracks bounds the listening history.
const MaxHeardTracks = 200

// HeardTrack is a track the listener heard on air.
type HeardTrack struct {
	SongID  string
	Artist  string
	Title   string
	Album   string
	Art     string
	HeardAt time.Time
}

// RecordHeard appends song to the listening history, dropping the oldest
// entries beyond MaxHeardTracks.
func (m *Manager) RecordHeard(song nowplaying.Song, at time.Time) error {
	tx, err := m.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	_, err = tx.Exec(`
		INSERT INTO heard_tracks (song_id, artist, title, album, art, heard_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, song.ID, song.Artist, song.Title, song.Album, song.Art, at.Unix())
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		DELETE FROM heard_tracks WHERE id NOT IN (
			SELECT id FROM heard_tracks ORDER BY heard_at DESC, id DESC LIMIT ?
		)
	`, MaxHeardTracks)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// RecentHeard returns up to limit heard tracks, newest first.
func (m *Manager) RecentHeard(limit int) ([]HeardTrack, error) {
	rows, err := m.db.Query(`
		SELECT song_id, artist, title, COALESCE(album, ''), COALESCE(art, ''), heard_at
		FROM heard_tracks
		ORDER BY heard_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tracks []HeardTrack
	for rows.Next() {
		var t HeardTrack
		var heardAt int64
		if err := rows.Scan(&t.SongID, &t.Artist, &t.Title, &t.Album, &t.Art, &heardAt); err != nil {
			return nil, err
		}
		t.HeardAt = time.Unix(heardAt, 0)
		tracks = append(tracks, t)
	}
	return tracks, rows.Err()
}
