// Discoverus - Personalized Content Discovery and A/B Experimentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discoverus

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Ranking.TopK != 10 {
		t.Errorf("Ranking.TopK = %d, want 10", cfg.Ranking.TopK)
	}
	if cfg.Experiment.WeightA != 1 || cfg.Experiment.WeightB != 1 {
		t.Errorf("split = %d/%d, want 1/1", cfg.Experiment.WeightA, cfg.Experiment.WeightB)
	}
	if cfg.Ranking.PopularityGenreBoost != 0.5 {
		t.Errorf("PopularityGenreBoost = %v, want 0.5", cfg.Ranking.PopularityGenreBoost)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("logging defaults = %+v", cfg.Logging)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DISCOVERUS_SERVER_PORT", "9090")
	t.Setenv("DISCOVERUS_EXPERIMENT_SALT", "env-salt")
	t.Setenv("DISCOVERUS_LOGGING_LEVEL", "debug")
	t.Setenv("DISCOVERUS_RANKING_TOP_K", "25")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Experiment.Salt != "env-salt" {
		t.Errorf("Experiment.Salt = %q, want env-salt", cfg.Experiment.Salt)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Ranking.TopK != 25 {
		t.Errorf("Ranking.TopK = %d, want 25", cfg.Ranking.TopK)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("server:\n  port: 7070\n  read_timeout: 20s\nexperiment:\n  weight_a: 9\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d, want 7070", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 20*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want 20s", cfg.Server.ReadTimeout)
	}
	if cfg.Experiment.WeightA != 9 {
		t.Errorf("Experiment.WeightA = %d, want 9", cfg.Experiment.WeightA)
	}
	// Untouched fields keep their defaults.
	if cfg.Server.WriteTimeout != 30*time.Second {
		t.Errorf("Server.WriteTimeout = %v, want default 30s", cfg.Server.WriteTimeout)
	}
}

func TestLoadEnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 7070\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("DISCOVERUS_SERVER_PORT", "9191")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9191 {
		t.Errorf("Server.Port = %d, want env override 9191", cfg.Server.Port)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "port too large", key: "DISCOVERUS_SERVER_PORT", value: "70000"},
		{name: "bad log level", key: "DISCOVERUS_LOGGING_LEVEL", value: "loud"},
		{name: "zero weight", key: "DISCOVERUS_EXPERIMENT_WEIGHT_A", value: "0"},
		{name: "topk too large", key: "DISCOVERUS_RANKING_TOP_K", value: "5000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Load accepted %s=%s", tt.key, tt.value)
			}
		})
	}
}

func TestEnvTransform(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "DISCOVERUS_SERVER_PORT", want: "server.port"},
		{in: "DISCOVERUS_SERVER_READ_TIMEOUT", want: "server.read_timeout"},
		{in: "DISCOVERUS_EXPERIMENT_SALT", want: "experiment.salt"},
		{in: "DISCOVERUS_RANKING_TOP_K", want: "ranking.top_k"},
	}
	for _, tt := range tests {
		if got := envTransform(tt.in); got != tt.want {
			t.Errorf("envTransform(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
