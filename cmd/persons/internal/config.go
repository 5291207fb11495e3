// Package internal holds the shared CLI plumbing: the YAML configuration
// file, colored output helpers and progress bars.
package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/SaschaSchweitzer/persons"
)

// Config is the CLI configuration, loaded from a YAML file.
type Config struct {
	Output OutputConfig `yaml:"output"`
	Engine EngineConfig `yaml:"engine"`
	Store  StoreConfig  `yaml:"store"`
}

// OutputConfig controls terminal output.
type OutputConfig struct {
	Color    bool `yaml:"color"`
	Progress bool `yaml:"progress"`
}

// EngineConfig mirrors the engine options.
type EngineConfig struct {
	RemoveParticlesSuffixes bool   `yaml:"remove_particles_suffixes"`
	NormalizeNames          bool   `yaml:"normalize_names"`
	OnlyFirstForename       bool   `yaml:"only_first_fnm"`
	MiddleNameRule          bool   `yaml:"middle_name_rule"`
	MatchSubsets            bool   `yaml:"match_subsets"`
	MatchInterlaced         bool   `yaml:"match_interlaced"`
	IgnoreOrderOfForenames  bool   `yaml:"ignore_order_of_forenames"`
	AbsolutePositionMatters bool   `yaml:"absolute_position_matters"`
	SplitByTimeGap          bool   `yaml:"split_by_time_gap"`
	MaximumTimeGap          int    `yaml:"maximum_time_gap"`
	TimeGapAction           string `yaml:"time_gap_action"`
	MaxGraphSize            int    `yaml:"max_graph_size"`
}

// StoreConfig describes the optional run store. The identify and runs
// commands take the path and database URL from here when their flags are
// empty; the backend is chosen by their --store flag and Backend is not
// read.
type StoreConfig struct {
	Backend     string `yaml:"backend"` // sqlite, badger or postgres
	Path        string `yaml:"path"`
	DatabaseURL string `yaml:"database_url"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	opts := persons.DefaultOptions()
	return &Config{
		Output: OutputConfig{Color: true, Progress: true},
		Engine: EngineConfig{
			RemoveParticlesSuffixes: opts.RemoveParticlesSuffixes,
			NormalizeNames:          opts.NormalizeNames,
			OnlyFirstForename:       opts.OnlyFirstForename,
			MiddleNameRule:          opts.MiddleNameRule,
			MatchSubsets:            opts.MatchSubsets,
			MatchInterlaced:         opts.MatchInterlaced,
			IgnoreOrderOfForenames:  opts.IgnoreOrderOfForenames,
			AbsolutePositionMatters: opts.AbsolutePositionMatters,
			SplitByTimeGap:          opts.SplitByTimeGap,
			MaximumTimeGap:          opts.MaximumTimeGap,
			TimeGapAction:           string(opts.TimeGapAction),
			MaxGraphSize:            opts.MaxGraphSize,
		},
		Store: StoreConfig{Backend: "", Path: "persons-runs"},
	}
}

// LoadConfig loads the configuration file. An empty path looks for
// persons.yaml in the working directory and then ~/.persons.yaml; a missing
// file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if path == "" {
		path = findConfigFile()
		if path == "" {
			return config, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return config, nil
}

func findConfigFile() string {
	if _, err := os.Stat("persons.yaml"); err == nil {
		return "persons.yaml"
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidate := filepath.Join(home, ".persons.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// EngineOptions converts the configuration into engine options.
func (c *Config) EngineOptions() *persons.Options {
	opts := persons.DefaultOptions()
	opts.RemoveParticlesSuffixes = c.Engine.RemoveParticlesSuffixes
	opts.NormalizeNames = c.Engine.NormalizeNames
	opts.OnlyFirstForename = c.Engine.OnlyFirstForename
	opts.MiddleNameRule = c.Engine.MiddleNameRule
	opts.MatchSubsets = c.Engine.MatchSubsets
	opts.MatchInterlaced = c.Engine.MatchInterlaced
	opts.IgnoreOrderOfForenames = c.Engine.IgnoreOrderOfForenames
	opts.AbsolutePositionMatters = c.Engine.AbsolutePositionMatters
	opts.SplitByTimeGap = c.Engine.SplitByTimeGap
	if c.Engine.MaximumTimeGap > 0 {
		opts.MaximumTimeGap = c.Engine.MaximumTimeGap
	}
	if c.Engine.TimeGapAction != "" {
		opts.TimeGapAction = persons.TimeGapAction(c.Engine.TimeGapAction)
	}
	if c.Engine.MaxGraphSize > 0 {
		opts.MaxGraphSize = c.Engine.MaxGraphSize
	}
	return opts
}
