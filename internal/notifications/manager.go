// Package notifications handles desktop notifications for phase changes
package notifications

import (
	"fmt"
	"sync"
	"time"

	"github.com/gen2brain/beeep"
	"github.com/google/uuid"
	"github.com/mrcode/dose-timeline/internal/models"
)

// Alert type constants
const (
	alertComeup = "comeup"
	alertPeak   = "peak"
	alertOffset = "offset"
	alertEnded  = "ended"
)

// Manager sends an alert when an ingestion enters a new phase
type Manager struct {
	settings      *models.Settings
	lastAlert     map[uuid.UUID]string
	lastAlertTime map[uuid.UUID]time.Time
	notify        func(title, message string) error
	now           func() time.Time
	mu            sync.Mutex
}

// NewManager creates a new notification manager
func NewManager(settings *models.Settings) *Manager {
	return &Manager{
		settings:      settings,
		lastAlert:     make(map[uuid.UUID]string),
		lastAlertTime: make(map[uuid.UUID]time.Time),
		notify:        sendNotification,
		now:           time.Now,
	}
}

// UpdateSettings updates the settings reference
func (m *Manager) UpdateSettings(settings *models.Settings) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = settings
}

// SetNotifier replaces the function used to deliver notifications
func (m *Manager) SetNotifier(notify func(title, message string) error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notify = notify
}

// CheckAndNotify sends a notification if the ingestion is in a different
// phase from the one last alerted. It reports whether a notification was sent.
func (m *Manager) CheckAndNotify(ing models.IngestionEvent, phase models.PhaseKind, active bool) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.settings.EnableNotifications {
		return false, nil
	}

	previous, alerted := m.lastAlert[ing.ID]
	alertType := shouldAlert(phase, active, alerted)
	if alertType == "" {
		return false, nil
	}

	if alertType == previous {
		// Same phase: only repeat when configured
		if m.settings.RepeatAlertMinutes <= 0 {
			return false, nil
		}
		repeat := time.Duration(m.settings.RepeatAlertMinutes) * time.Minute
		if m.now().Sub(m.lastAlertTime[ing.ID]) < repeat {
			return false, nil
		}
	}

	title, message := formatNotification(ing, alertType)
	if err := m.notify(title, message); err != nil {
		return false, fmt.Errorf("sending notification: %w", err)
	}

	m.lastAlert[ing.ID] = alertType
	m.lastAlertTime[ing.ID] = m.now()
	return true, nil
}

// shouldAlert maps a timeline position to an alert type. Onset is silent,
// and the end of effects is only announced for ingestions already alerted.
func shouldAlert(phase models.PhaseKind, active, alerted bool) string {
	if !active {
		if alerted {
			return alertEnded
		}
		return ""
	}

	switch phase {
	case models.PhaseComeup:
		return alertComeup
	case models.PhasePeak:
		return alertPeak
	case models.PhaseOffset:
		return alertOffset
	}
	return ""
}

// formatNotification creates the notification title and message
func formatNotification(ing models.IngestionEvent, alertType string) (string, string) {
	name := "Substance"
	if ing.Substance != nil && ing.Substance.Name != "" {
		name = ing.Substance.Name
	}
	dose := fmt.Sprintf("%g %s %s", ing.Amount, ing.Unit, ing.Route)

	var title, message string
	switch alertType {
	case alertComeup:
		title = "⬆️ " + name + " coming up"
		message = fmt.Sprintf("Effects of %s are building.", dose)
	case alertPeak:
		title = "⏺️ " + name + " peaking"
		message = fmt.Sprintf("%s has reached full intensity.", dose)
	case alertOffset:
		title = "⬇️ " + name + " wearing off"
		message = fmt.Sprintf("Effects of %s are easing.", dose)
	case alertEnded:
		title = "✅ " + name + " ended"
		message = fmt.Sprintf("Documented effects of %s are over.", dose)
	}

	return title, message
}

// sendNotification sends a system notification
func sendNotification(title, message string) error {
	return beeep.Notify(title, message, "")
}

// ClearAlertState forgets one ingestion, or every ingestion for uuid.Nil
func (m *Manager) ClearAlertState(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id == uuid.Nil {
		m.lastAlert = make(map[uuid.UUID]string)
		m.lastAlertTime = make(map[uuid.UUID]time.Time)
		return
	}
	delete(m.lastAlert, id)
	delete(m.lastAlertTime, id)
}

// SendTestNotification sends a test notification
func (m *Manager) SendTestNotification() error {
	return m.notify("Dose Timeline", "Test notification - alerts are working!")
}
