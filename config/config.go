// Package config resolves the immutable runtime configuration from
// ~/.config/soupawhisper/config.ini. Every value has a documented
// default; a missing file or malformed value silently falls back.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"
)

// Config is resolved once at startup and passed explicitly into each
// component. It is never mutated afterwards.
type Config struct {
	Model       string // whisper model name, e.g. "base.en"
	Device      string // "cpu" or "cuda"
	ComputeType string // e.g. "int8", "float16"
	Key         string // hotkey name, e.g. "f12"
	AutoType    bool   // simulate typing into the focused window
	Notify      bool   // desktop notifications
}

// Default returns the canonical configuration used when no file is present.
func Default() Config {
	return Config{
		Model:       "base.en",
		Device:      "cpu",
		ComputeType: "int8",
		Key:         "f12",
		AutoType:    true,
		Notify:      true,
	}
}

// Path returns the expected config file location.
func Path() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "soupawhisper", "config.ini")
}

// Load reads the INI file at path and overlays it onto the defaults.
// It never fails: an absent file, absent keys, or unparseable values
// leave the corresponding defaults in place.
func Load(path string) Config {
	cfg := Default()
	if path == "" {
		return cfg
	}

	f, err := ini.Load(path)
	if err != nil {
		return cfg
	}

	whisper := f.Section("whisper")
	if v := whisper.Key("model").String(); v != "" {
		cfg.Model = v
	}
	if v := whisper.Key("device").String(); v != "" {
		cfg.Device = v
	}
	if v := whisper.Key("compute_type").String(); v != "" {
		cfg.ComputeType = v
	}

	if v := f.Section("hotkey").Key("key").String(); v != "" {
		cfg.Key = v
	}

	behavior := f.Section("behavior")
	if v, err := behavior.Key("auto_type").Bool(); err == nil {
		cfg.AutoType = v
	}
	if v, err := behavior.Key("notifications").Bool(); err == nil {
		cfg.Notify = v
	}

	return cfg
}
