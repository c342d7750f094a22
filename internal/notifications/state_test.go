package notifications

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mrcode/dose-timeline/internal/models"
)

func TestManager_StateAcrossManagers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "alerts.json")
	ing := testIngestion()

	first, log, now := newTestManager(models.DefaultSettings())
	if notified, _ := first.CheckAndNotify(ing, models.PhasePeak, true); !notified {
		t.Fatal("first peak check should notify")
	}
	if err := first.SaveState(path); err != nil {
		t.Fatalf("SaveState() error = %v", err)
	}

	second, secondLog, secondNow := newTestManager(models.DefaultSettings())
	*secondNow = now.Add(time.Hour)
	if err := second.LoadState(path); err != nil {
		t.Fatalf("LoadState() error = %v", err)
	}
	if notified, _ := second.CheckAndNotify(ing, models.PhasePeak, true); notified {
		t.Error("restored manager should not repeat the peak alert")
	}
	if notified, _ := second.CheckAndNotify(ing, models.PhaseOnset, false); !notified {
		t.Error("restored manager should announce the end of effects")
	}

	if len(*log) != 1 || len(*secondLog) != 1 {
		t.Errorf("sent %d + %d notifications, want 1 + 1", len(*log), len(*secondLog))
	}
}

func TestManager_StateRepeat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alerts.json")
	settings := models.DefaultSettings()
	settings.RepeatAlertMinutes = 15
	ing := testIngestion()

	first, _, now := newTestManager(settings)
	_, _ = first.CheckAndNotify(ing, models.PhasePeak, true)
	if err := first.SaveState(path); err != nil {
		t.Fatalf("SaveState() error = %v", err)
	}

	second, _, secondNow := newTestManager(settings)
	if err := second.LoadState(path); err != nil {
		t.Fatalf("LoadState() error = %v", err)
	}

	*secondNow = now.Add(10 * time.Minute)
	if notified, _ := second.CheckAndNotify(ing, models.PhasePeak, true); notified {
		t.Error("should not repeat before 15 minutes")
	}
	*secondNow = now.Add(15 * time.Minute)
	if notified, _ := second.CheckAndNotify(ing, models.PhasePeak, true); !notified {
		t.Error("should repeat after 15 minutes")
	}
}

func TestManager_LoadState_Missing(t *testing.T) {
	manager, _, _ := newTestManager(models.DefaultSettings())
	ing := testIngestion()
	_, _ = manager.CheckAndNotify(ing, models.PhasePeak, true)

	if err := manager.LoadState(filepath.Join(t.TempDir(), "none.json")); err != nil {
		t.Fatalf("LoadState() error = %v", err)
	}
	if notified, _ := manager.CheckAndNotify(ing, models.PhasePeak, true); !notified {
		t.Error("a missing state file should leave no history")
	}
}

func TestManager_LoadState_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alerts.json")
	if err := os.WriteFile(path, []byte("not json"), 0600); err != nil {
		t.Fatal(err)
	}

	manager, _, _ := newTestManager(models.DefaultSettings())
	if err := manager.LoadState(path); err == nil {
		t.Error("LoadState() should fail on invalid JSON")
	}
}

func TestManager_SaveState_DropsOldEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alerts.json")
	old, recent := testIngestion(), testIngestion()

	manager, _, now := newTestManager(models.DefaultSettings())
	_, _ = manager.CheckAndNotify(old, models.PhasePeak, true)
	*now = now.Add(8 * 24 * time.Hour)
	_, _ = manager.CheckAndNotify(recent, models.PhasePeak, true)
	if err := manager.SaveState(path); err != nil {
		t.Fatalf("SaveState() error = %v", err)
	}

	restored, _, restoredNow := newTestManager(models.DefaultSettings())
	*restoredNow = *now
	if err := restored.LoadState(path); err != nil {
		t.Fatalf("LoadState() error = %v", err)
	}
	if notified, _ := restored.CheckAndNotify(old, models.PhasePeak, true); !notified {
		t.Error("week-old history should have been dropped")
	}
	if notified, _ := restored.CheckAndNotify(recent, models.PhasePeak, true); notified {
		t.Error("recent history should be kept")
	}
}
