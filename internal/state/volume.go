package state

import (
	"database/sql"
	"errors"
	"time"

	"github.com/llehouerou/liveradio/internal/playback"
)

// LoadVolume returns the saved volume state. ok is false on first run.
func (m *Manager) LoadVolume() (playback.VolumeLevel, bool, error) {
	var level playback.VolumeLevel

	row := m.db.QueryRow(`SELECT volume, muted, last_audible FROM player_state WHERE id = 1`)
	err := row.Scan(&level.Volume, &level.Muted, &level.LastAudible)
	if errors.Is(err, sql.ErrNoRows) {
		return playback.VolumeLevel{}, false, nil
	}
	if err != nil {
		return playback.VolumeLevel{}, false, err
	}

	return level, true, nil
}

// SaveVolume persists the volume after a short quiet period, so holding
// the volume key writes once.
func (m *Manager) SaveVolume(level playback.VolumeLevel) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending = &level

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		m.saveMu.Lock()
		pending := m.pending
		m.pending = nil
		m.saveMu.Unlock()

		if pending != nil {
			_ = saveVolume(m.db, *pending)
		}
	})
}

func saveVolume(db *sql.DB, level playback.VolumeLevel) error {
	_, err := db.Exec(`
		INSERT INTO player_state (id, volume, muted, last_audible)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			volume = excluded.volume,
			muted = excluded.muted,
			last_audible = excluded.last_audible
	`, level.Volume, level.Muted, level.LastAudible)
	return err
}
