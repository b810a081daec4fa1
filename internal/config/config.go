// Discoverus - Personalized Content Discovery and A/B Experimentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discoverus

// Package config loads layered runtime configuration: built-in defaults,
// an optional YAML file, then environment variables, with env winning.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config is the full runtime configuration.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Catalog    CatalogConfig    `koanf:"catalog"`
	Experiment ExperimentConfig `koanf:"experiment"`
	Ranking    RankingConfig    `koanf:"ranking"`
	Events     EventsConfig     `koanf:"events"`
	Logging    LoggingConfig    `koanf:"logging"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"min=1s"`
	CORSOrigins     []string      `koanf:"cors_origins"`
}

// CatalogConfig controls catalog loading. An empty path selects the
// built-in sample catalog.
type CatalogConfig struct {
	Path string `koanf:"path"`
}

// ExperimentConfig controls variant assignment.
type ExperimentConfig struct {
	// Salt namespaces session hashing. Changing it reassigns every session.
	Salt string `koanf:"salt" validate:"required"`

	// WeightA and WeightB are the relative split weights.
	WeightA uint64 `koanf:"weight_a" validate:"min=1"`
	WeightB uint64 `koanf:"weight_b" validate:"min=1"`
}

// RankingConfig controls result assembly and boost weights.
type RankingConfig struct {
	TopK int `koanf:"top_k" validate:"min=1,max=100"`

	PopularityGenreBoost float64 `koanf:"popularity_genre_boost" validate:"min=0"`
	PopularityCastBoost  float64 `koanf:"popularity_cast_boost" validate:"min=0"`
	PopularityVibeBoost  float64 `koanf:"popularity_vibe_boost" validate:"min=0"`

	SimilarityGenreBoost float64 `koanf:"similarity_genre_boost" validate:"min=0"`
	SimilarityCastBoost  float64 `koanf:"similarity_cast_boost" validate:"min=0"`
}

// EventsConfig controls the durable event copy.
type EventsConfig struct {
	// DataDir is the BadgerDB directory. Empty disables persistence; the
	// in-memory log still works.
	DataDir string `koanf:"data_dir"`

	// BusBuffer is the pub/sub channel buffer between log and persister.
	BusBuffer int64 `koanf:"bus_buffer" validate:"min=1"`
}

// LoggingConfig controls the zerolog output.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json console"`
}

// defaultConfig returns the built-in defaults, applied before file and env
// layers.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CORSOrigins:     []string{"*"},
		},
		Catalog: CatalogConfig{
			Path: "",
		},
		Experiment: ExperimentConfig{
			Salt:    "discoverus-v1",
			WeightA: 1,
			WeightB: 1,
		},
		Ranking: RankingConfig{
			TopK:                 10,
			PopularityGenreBoost: 0.5,
			PopularityCastBoost:  0.3,
			PopularityVibeBoost:  0.4,
			SimilarityGenreBoost: 0.3,
			SimilarityCastBoost:  0.2,
		},
		Events: EventsConfig{
			DataDir:   "",
			BusBuffer: 1024,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate checks the assembled configuration.
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
