package models

import (
	"path/filepath"
	"testing"
)

func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if settings.APIURL != "https://api.psychonautwiki.org/" {
		t.Errorf("Default API URL = %s, want https://api.psychonautwiki.org/", settings.APIURL)
	}
	if settings.RequestTimeout != 30 {
		t.Errorf("Default request timeout = %d, want 30", settings.RequestTimeout)
	}
	if settings.DefaultRoute != "oral" {
		t.Errorf("Default route = %s, want oral", settings.DefaultRoute)
	}
	if settings.DefaultUnit != "mg" {
		t.Errorf("Default unit = %s, want mg", settings.DefaultUnit)
	}
	if settings.ChartSamples != 240 {
		t.Errorf("Default chart samples = %d, want 240", settings.ChartSamples)
	}
}

func TestSettings_Clone(t *testing.T) {
	original := DefaultSettings()
	original.APIURL = "https://test.example.com"

	clone := original.Clone()

	if clone.APIURL != original.APIURL {
		t.Error("Clone did not copy APIURL")
	}

	clone.APIURL = "https://modified.example.com"
	if original.APIURL == clone.APIURL {
		t.Error("Modifying clone affected original")
	}
}

func TestSettings_UsesCatalog(t *testing.T) {
	settings := DefaultSettings()

	if settings.UsesCatalog() {
		t.Error("Default settings should use the API")
	}

	settings.CatalogPath = "substances.yaml"
	if !settings.UsesCatalog() {
		t.Error("Settings with a catalog path should use the catalog")
	}
}

func TestSettings_SaveLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	original := DefaultSettings()
	original.DefaultRoute = "sublingual"
	original.ChartWidth = 1200
	if err := original.SaveFile(path); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}

	loaded := &Settings{}
	if err := loaded.LoadFile(path); err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if loaded.DefaultRoute != "sublingual" {
		t.Errorf("DefaultRoute = %s, want sublingual", loaded.DefaultRoute)
	}
	if loaded.ChartWidth != 1200 {
		t.Errorf("ChartWidth = %d, want 1200", loaded.ChartWidth)
	}
}

func TestSettings_LoadFile_Missing(t *testing.T) {
	settings := &Settings{}
	if err := settings.LoadFile(filepath.Join(t.TempDir(), "missing.json")); err != nil {
		t.Fatalf("LoadFile() error = %v, want nil", err)
	}
	if settings.ChartHeight != DefaultSettings().ChartHeight {
		t.Errorf("ChartHeight = %d, want default", settings.ChartHeight)
	}
}

func TestSettings_Validate(t *testing.T) {
	settings := DefaultSettings()
	settings.RequestTimeout = 1
	settings.ChartSamples = 0
	settings.RepeatAlertMinutes = -5
	settings.APIURL = ""

	settings.Validate()

	if settings.RequestTimeout != 30 {
		t.Errorf("RequestTimeout = %d, want 30", settings.RequestTimeout)
	}
	if settings.ChartSamples != 240 {
		t.Errorf("ChartSamples = %d, want 240", settings.ChartSamples)
	}
	if settings.RepeatAlertMinutes != 0 {
		t.Errorf("RepeatAlertMinutes = %d, want 0", settings.RepeatAlertMinutes)
	}
	if settings.APIURL == "" {
		t.Error("APIURL should fall back to default")
	}
}
