// Package config defines the strongly-typed world configuration.
// Every numeric bound is enforced at construction — out-of-range values are
// rejected with a ValidationError, never clamped silently.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	MaxWorldNameLength = 100
	MaxPopulation      = 100
)

// ValidationError reports a configuration field that failed its bound check.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s %s", e.Field, e.Message)
}

// WorldConfig holds the bounded parameters of a world.
// All dial values live in [0,1].
type WorldConfig struct {
	Name                string  `yaml:"name" json:"name"`
	PopulationSize      int     `yaml:"population_size" json:"population_size"`
	CulturalEntropy     float64 `yaml:"cultural_entropy" json:"cultural_entropy"`
	BeliefPlasticity    float64 `yaml:"belief_plasticity" json:"belief_plasticity"`
	CrisisFrequency     float64 `yaml:"crisis_frequency" json:"crisis_frequency"`
	AuthoritySkepticism float64 `yaml:"authority_skepticism" json:"authority_skepticism"`
}

// NewWorldConfig validates the given parameters and returns a WorldConfig.
func NewWorldConfig(name string, population int, entropy, plasticity, crisis, skepticism float64) (WorldConfig, error) {
	cfg := WorldConfig{
		Name:                name,
		PopulationSize:      population,
		CulturalEntropy:     entropy,
		BeliefPlasticity:    plasticity,
		CrisisFrequency:     crisis,
		AuthoritySkepticism: skepticism,
	}
	if err := cfg.Validate(); err != nil {
		return WorldConfig{}, err
	}
	return cfg, nil
}

// Validate checks every bound in the data model. Returns a *ValidationError
// naming the first offending field.
func (c WorldConfig) Validate() error {
	if c.Name == "" {
		return &ValidationError{Field: "name", Message: "must not be empty"}
	}
	if len(c.Name) > MaxWorldNameLength {
		return &ValidationError{Field: "name", Message: fmt.Sprintf("must be at most %d characters", MaxWorldNameLength)}
	}
	if c.PopulationSize < 1 || c.PopulationSize > MaxPopulation {
		return &ValidationError{Field: "population_size", Message: fmt.Sprintf("must be in [1,%d]", MaxPopulation)}
	}
	dials := []struct {
		name  string
		value float64
	}{
		{"cultural_entropy", c.CulturalEntropy},
		{"belief_plasticity", c.BeliefPlasticity},
		{"crisis_frequency", c.CrisisFrequency},
		{"authority_skepticism", c.AuthoritySkepticism},
	}
	for _, d := range dials {
		if d.value < 0 || d.value > 1 {
			return &ValidationError{Field: d.name, Message: "must be in [0,1]"}
		}
	}
	return nil
}

// ServerConfig holds host-process settings.
type ServerConfig struct {
	Port     int    `yaml:"port"`
	DBPath   string `yaml:"db_path"`
	Seed     int64  `yaml:"seed"`
	TickMS   int    `yaml:"tick_ms"` // Wall-clock interval between ticks.
	AdminKey string `yaml:"-"`       // From GODWORLD_ADMIN_KEY, never from file.
}

// File is the full on-disk configuration.
type File struct {
	World  WorldConfig  `yaml:"world"`
	Server ServerConfig `yaml:"server"`
}

// Load reads and validates a YAML configuration file.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := f.World.Validate(); err != nil {
		return nil, err
	}
	if f.Server.Port == 0 {
		f.Server.Port = 8080
	}
	if f.Server.DBPath == "" {
		f.Server.DBPath = "data/godworld.db"
	}
	if f.Server.TickMS <= 0 {
		f.Server.TickMS = 1000
	}
	f.Server.AdminKey = os.Getenv("GODWORLD_ADMIN_KEY")
	return &f, nil
}
