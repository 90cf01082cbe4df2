// Package config reads scenario files describing solver runs. A scenario
// file is the external input of the comparative tables: a list of labelled
// parameter sets, horizons and terminal-condition selectors.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/SuriChen1028/PortfolioChoice/batch"
	"github.com/SuriChen1028/PortfolioChoice/model"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// Scenario describes one solver run.
type Scenario struct {
	Label  string  `yaml:"label"`
	Sigma0 float64 `yaml:"sigma0"`
	By     float64 `yaml:"b_y"`
	Gamma  float64 `yaml:"gamma"`
	Alpha  float64 `yaml:"alpha"`
	Delta  float64 `yaml:"delta"`
	R      float64 `yaml:"r"`
	T      float64 `yaml:"horizon"`
	Dt     float64 `yaml:"dt"`
	// Terminal selects the terminal condition, "zero" or "limiting".
	Terminal string `yaml:"terminal"`
}

// Load reads and validates a scenario file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &c, nil
}

// Validate checks every scenario against the model's parameter ranges.
func (c *Config) Validate() error {
	if len(c.Scenarios) == 0 {
		return fmt.Errorf("%w: no scenarios", model.ErrInvalidParameter)
	}
	for i, s := range c.Scenarios {
		if _, err := s.Run(); err != nil {
			return fmt.Errorf("scenario %d (%q): %w", i, s.Label, err)
		}
	}
	return nil
}

// Run converts the scenario into a batch run.
func (s Scenario) Run() (batch.Run, error) {
	run := batch.Run{
		Label: s.Label,
		Params: model.Parameters{
			Sigma0: s.Sigma0,
			By:     s.By,
			Gamma:  s.Gamma,
			Alpha:  s.Alpha,
			Delta:  s.Delta,
			R:      s.R,
		},
		Horizon: model.Horizon{T: s.T, Dt: s.Dt},
	}
	switch s.Terminal {
	case "zero":
		run.Terminal = model.ZeroTerminal
	case "limiting":
		run.Terminal = model.LimitingTerminal
	default:
		return batch.Run{}, fmt.Errorf("%w: terminal must be \"zero\" or \"limiting\", got %q", model.ErrInvalidParameter, s.Terminal)
	}
	if err := run.Params.Validate(); err != nil {
		return batch.Run{}, err
	}
	if err := run.Horizon.Validate(); err != nil {
		return batch.Run{}, err
	}
	return run, nil
}

// Runs converts all scenarios. Call Validate (or Load, which does) first;
// conversion of a validated config cannot fail.
func (c *Config) Runs() []batch.Run {
	runs := make([]batch.Run, 0, len(c.Scenarios))
	for _, s := range c.Scenarios {
		run, err := s.Run()
		if err != nil {
			panic(err)
		}
		runs = append(runs, run)
	}
	return runs
}
