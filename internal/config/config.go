package config

import (
	"fmt"
	"os"
	"time"

	"noukie-quiz-service/internal/game"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Quiz struct {
		TTL string `yaml:"ttl"`
	} `yaml:"quiz"`
	Game GameConfig `yaml:"game"`
}

// GameConfig maps subject names to their play tuning; unknown subjects fall
// back to the default. New subjects are additive config changes only.
type GameConfig struct {
	Default  game.SubjectConfig            `yaml:"default"`
	Subjects map[string]game.SubjectConfig `yaml:"subjects"`
}

// ForSubject resolves the tuning for a subject, falling back to the default.
func (g GameConfig) ForSubject(subject string) game.SubjectConfig {
	if cfg, ok := g.Subjects[subject]; ok {
		return cfg
	}
	return g.Default
}

func (g *GameConfig) applyDefaults() {
	if len(g.Default.Ranks) == 0 {
		g.Default = game.DefaultSubjectConfig()
	}
}

func (g GameConfig) validate() error {
	if err := g.Default.Validate(); err != nil {
		return fmt.Errorf("game.default: %w", err)
	}
	for subject, cfg := range g.Subjects {
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("game.subjects.%s: %w", subject, err)
		}
	}
	return nil
}

// Load reads YAML config from path.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	cfg.Game.applyDefaults()
	if err := cfg.Game.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
