/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"bookcanvas/internal/canvas"
	applog "bookcanvas/internal/log"
	"bookcanvas/internal/snap"
	"bookcanvas/internal/vector"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are treated as read-only overrides at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.
// Unknown fields are ignored on unmarshal.

type SnapConfig struct {
	GridSize          float64 `yaml:"grid_size"`
	AxisLockThreshold float64 `yaml:"axis_lock_threshold"`
	PreciseStepSize   float64 `yaml:"precise_step_size"`
}

type GuidesConfig struct {
	ProximityThreshold float64 `yaml:"proximity_threshold"`
	Disabled           bool    `yaml:"disabled"`
}

type CanvasConfig struct {
	MinWidth   float64 `yaml:"min_width"`
	MinHeight  float64 `yaml:"min_height"`
	MinVisible float64 `yaml:"min_visible"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	Snap          SnapConfig    `yaml:"snap"`
	Guides        GuidesConfig  `yaml:"guides"`
	Canvas        CanvasConfig  `yaml:"canvas"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Snap: SnapConfig{
			GridSize:          snap.DefaultGridSize,
			AxisLockThreshold: snap.DefaultAxisLockThreshold,
			PreciseStepSize:   snap.DefaultPreciseStepSize,
		},
		Guides:  GuidesConfig{ProximityThreshold: vector.DefaultProximityThreshold},
		Canvas:  CanvasConfig{MinWidth: canvas.DefaultMinWidth, MinHeight: canvas.DefaultMinHeight, MinVisible: canvas.DefaultMinVisible},
		Logging: LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvGridSize          = "BCE_GRID_SIZE"
	EnvAxisLockThreshold = "BCE_AXIS_LOCK_THRESHOLD"
	EnvPreciseStep       = "BCE_PRECISE_STEP"
	// Logging envs, shared with the log package.
	EnvLogLevel  = applog.EnvLevel
	EnvLogFormat = applog.EnvFormat
	EnvLogSource = applog.EnvSource
	EnvLogFile   = applog.EnvFile
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid configuration")

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "BookCanvas")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "BookCanvas")
	default: // linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			base = filepath.Join(xdg, "bookcanvas")
		} else {
			base = filepath.Join(os.Getenv("HOME"), ".config", "bookcanvas")
		}
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults and merges
// environment overrides.
func Load() (AppConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		cfg := Defaults()
		applyEnvOverrides(&cfg)
		return cfg, err
	}
	return LoadFile(path)
}

// LoadFile is Load for an explicit path. A missing file yields the defaults;
// a malformed one is an error.
func LoadFile(path string) (AppConfig, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			applyEnvOverrides(&cfg)
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
		mergeInto(&cfg, &fileCfg)
	case !errors.Is(err, os.ErrNotExist):
		applyEnvOverrides(&cfg)
		return cfg, err
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes the user config YAML to the per-user path.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveFile(path, cfg)
}

// SaveFile writes cfg as YAML to path, creating parent directories.
func SaveFile(path string, cfg AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Validate rejects values the engine cannot work with. Zero means "use the
// default" and is accepted.
func (c AppConfig) Validate() error {
	checks := []struct {
		key string
		v   float64
	}{
		{"snap.grid_size", c.Snap.GridSize},
		{"snap.axis_lock_threshold", c.Snap.AxisLockThreshold},
		{"snap.precise_step_size", c.Snap.PreciseStepSize},
		{"guides.proximity_threshold", c.Guides.ProximityThreshold},
		{"canvas.min_width", c.Canvas.MinWidth},
		{"canvas.min_height", c.Canvas.MinHeight},
		{"canvas.min_visible", c.Canvas.MinVisible},
	}
	for _, ch := range checks {
		if ch.v < 0 {
			return fmt.Errorf("%w: %s must not be negative (got %g)", ErrInvalid, ch.key, ch.v)
		}
	}
	return nil
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	mergeFloat(&dst.Snap.GridSize, src.Snap.GridSize)
	mergeFloat(&dst.Snap.AxisLockThreshold, src.Snap.AxisLockThreshold)
	mergeFloat(&dst.Snap.PreciseStepSize, src.Snap.PreciseStepSize)
	mergeFloat(&dst.Guides.ProximityThreshold, src.Guides.ProximityThreshold)
	// booleans: copy directly from src (file) so user preferences persist
	dst.Guides.Disabled = src.Guides.Disabled
	mergeFloat(&dst.Canvas.MinWidth, src.Canvas.MinWidth)
	mergeFloat(&dst.Canvas.MinHeight, src.Canvas.MinHeight)
	mergeFloat(&dst.Canvas.MinVisible, src.Canvas.MinVisible)
	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func mergeFloat(dst *float64, v float64) {
	if v != 0 {
		*dst = v
	}
}

func envFloat(key string, dst *float64) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
		*dst = f
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	envFloat(EnvGridSize, &cfg.Snap.GridSize)
	envFloat(EnvAxisLockThreshold, &cfg.Snap.AxisLockThreshold)
	envFloat(EnvPreciseStep, &cfg.Snap.PreciseStepSize)
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		lv := strings.ToLower(v)
		cfg.Logging.Source = lv == "1" || lv == "true" || lv == "on" || lv == "yes"
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	var env string
	switch key {
	case "snap.grid_size":
		env = EnvGridSize
	case "snap.axis_lock_threshold":
		env = EnvAxisLockThreshold
	case "snap.precise_step_size":
		env = EnvPreciseStep
	case "logging.level":
		env = EnvLogLevel
	case "logging.format":
		env = EnvLogFormat
	case "logging.source":
		env = EnvLogSource
	case "logging.file":
		env = EnvLogFile
	default:
		return "", false
	}
	if os.Getenv(env) != "" {
		return env, true
	}
	return "", false
}

// SnapOptions converts the snap section for snap.NewResolver.
func (c AppConfig) SnapOptions() snap.Options {
	return snap.Options{
		GridSize:          c.Snap.GridSize,
		AxisLockThreshold: c.Snap.AxisLockThreshold,
		PreciseStepSize:   c.Snap.PreciseStepSize,
	}
}

// CanvasOptions converts the snap, guides and canvas sections. The container
// size is left at zero for the caller to fill in.
func (c AppConfig) CanvasOptions() canvas.Options {
	return canvas.Options{
		Snap:           c.SnapOptions(),
		MinWidth:       c.Canvas.MinWidth,
		MinHeight:      c.Canvas.MinHeight,
		MinVisible:     c.Canvas.MinVisible,
		GuideThreshold: c.Guides.ProximityThreshold,
		DisableGuides:  c.Guides.Disabled,
	}
}

// LogOptions converts the logging section for log.Init.
func (c AppConfig) LogOptions() applog.Options {
	return applog.Options{
		Level:     c.Logging.Level,
		Format:    c.Logging.Format,
		AddSource: c.Logging.Source,
		File:      c.Logging.File,
	}
}
