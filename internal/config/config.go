// Package config resolves and persists application configuration, and
// derives the audio buffer-sizing constants the capture pipeline needs.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	// AppName names the subdirectory under the user's config dir.
	AppName = "capwave"
)

// AudioDeviceConfig identifies the preferred audio host/device pair.
// SelectedHostID is round-tripped but never consulted by device selection
// logic; only SelectedDeviceID is currently used to resolve a device.
type AudioDeviceConfig struct {
	SelectedHostID   string `mapstructure:"selected_host_id" toml:"selected_host_id"`
	SelectedDeviceID string `mapstructure:"selected_device_id" toml:"selected_device_id"`
}

// Config is the full persisted configuration surface.
type Config struct {
	// ActiveModelPath is the directory holding the downloaded recognition
	// model (a "whisper" subdirectory with encoder/decoder/tokens files),
	// not a single model file.
	ActiveModelPath string            `mapstructure:"active_model_path" toml:"active_model_path"`
	AudioDevice     AudioDeviceConfig `mapstructure:"audio_device" toml:"audio_device"`
}

// Default returns the configuration used when no file exists yet.
func Default() Config {
	return Config{}
}

// path returns the absolute path to the config file, honoring
// os.UserConfigDir() and falling back to $HOME/.config when unset (the same
// fallback cwdecoder uses).
func path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		home := os.Getenv("HOME")
		if home == "" {
			return "", fmt.Errorf("config: resolve config directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, AppName, "config.toml"), nil
}

// Load reads the config file, creating it with defaults if it does not yet
// exist. Viper layers in environment overrides (prefix CAPWAVE_) over the
// file's values before the result is unmarshaled.
func Load() (Config, error) {
	file, err := path()
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix("CAPWAVE")
	v.AutomaticEnv()

	if _, statErr := os.Stat(file); errors.Is(statErr, os.ErrNotExist) {
		if err := Save(Default()); err != nil {
			return Config{}, fmt.Errorf("config: create default: %w", err)
		}
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", file, err)
	}
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", file, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	return cfg, nil
}

// Save pretty-prints cfg as TOML and writes it to the config path,
// creating parent directories as needed. Mirrors the original backend's
// toml::to_string_pretty round-trip.
func Save(cfg Config) error {
	file, err := path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	enc.SetIndentSymbol("  ")
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}

	if err := os.WriteFile(file, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", file, err)
	}
	return nil
}
