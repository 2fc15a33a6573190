package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, ".config"))

	cfg := Config{
		ActiveModelPath: "/models/whisper-base.bin",
		AudioDevice: AudioDeviceConfig{
			SelectedDeviceID: "default",
		},
	}
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.ActiveModelPath != cfg.ActiveModelPath {
		t.Errorf("ActiveModelPath = %q, want %q", got.ActiveModelPath, cfg.ActiveModelPath)
	}
	if got.AudioDevice.SelectedDeviceID != cfg.AudioDevice.SelectedDeviceID {
		t.Errorf("SelectedDeviceID = %q, want %q", got.AudioDevice.SelectedDeviceID, cfg.AudioDevice.SelectedDeviceID)
	}
}

func TestLoadCreatesDefaultWhenMissing(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, ".config"))

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.ActiveModelPath != "" {
		t.Errorf("ActiveModelPath = %q, want empty default", got.ActiveModelPath)
	}

	file, err := path()
	if err != nil {
		t.Fatalf("path: %v", err)
	}
	if _, err := os.Stat(file); err != nil {
		t.Errorf("expected config file to be created at %s: %v", file, err)
	}
}
