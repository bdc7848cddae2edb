// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package record

import (
	"sync"

	"github.com/MKhiriev/go-valid-record/logger"
	"github.com/caarlos0/env/v11"
)

// Settings are the process-wide knobs of the framework. Code defaults
// are applied first and the environment may override them, so importing
// the package needs no configuration at all.
type Settings struct {
	// StrictValidatorNames rejects bare inline validator functions in
	// attribute specifications at metadata resolution time; inline
	// validators must be wrapped in Named. Enabled by default.
	StrictValidatorNames bool `env:"RECORD_STRICT_VALIDATOR_NAMES"`

	// WarnOnReadOnly emits a developer warning when a read-only
	// attribute that already holds a value is dropped from a batch.
	// Enabled by default.
	WarnOnReadOnly bool `env:"RECORD_WARN_ON_READONLY"`
}

var (
	settingsMu sync.RWMutex
	settings   = loadSettings()

	logMu sync.RWMutex
	log   = logger.Nop()
)

// loadSettings builds the initial settings: code defaults overlaid with
// environment overrides. A malformed environment falls back to the code
// defaults; the framework must stay usable either way.
func loadSettings() Settings {
	s := Settings{
		StrictValidatorNames: true,
		WarnOnReadOnly:       true,
	}
	if err := env.Parse(&s); err != nil {
		return Settings{StrictValidatorNames: true, WarnOnReadOnly: true}
	}
	return s
}

// Configure replaces the process-wide settings. Metadata already
// resolved under the previous settings is not recomputed; configure
// before declaring record types.
func Configure(s Settings) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	settings = s
}

func currentSettings() Settings {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settings
}

// SetLogger routes framework diagnostics (e.g. read-only drop warnings)
// to l. The default logger discards everything.
func SetLogger(l *logger.Logger) {
	logMu.Lock()
	defer logMu.Unlock()
	if l != nil {
		log = l
	}
}

func frameworkLogger() *logger.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	return log
}
