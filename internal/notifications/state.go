package notifications

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// stateRetention bounds how long an ingestion's alert history is kept
const stateRetention = 7 * 24 * time.Hour

type alertRecord struct {
	Alert string    `json:"alert"`
	At    time.Time `json:"at"`
}

// LoadState replaces the alert history with the one stored at path. A
// missing file leaves the history empty.
func (m *Manager) LoadState(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastAlert = make(map[uuid.UUID]string)
	m.lastAlertTime = make(map[uuid.UUID]time.Time)

	data, err := os.ReadFile(path) //nolint:gosec // State lives beside the settings file
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var records map[uuid.UUID]alertRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return err
	}
	for id, r := range records {
		m.lastAlert[id] = r.Alert
		m.lastAlertTime[id] = r.At
	}
	return nil
}

// SaveState writes the alert history to path, dropping ingestions last
// alerted more than a week ago
func (m *Manager) SaveState(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	records := make(map[uuid.UUID]alertRecord, len(m.lastAlert))
	for id, alert := range m.lastAlert {
		at := m.lastAlertTime[id]
		if now.Sub(at) > stateRetention {
			continue
		}
		records[id] = alertRecord{Alert: alert, At: at}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
