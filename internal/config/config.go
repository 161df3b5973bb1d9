package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBoxLength  = 1e-10          // 1 angstrom
	DefaultMass       = 9.10938356e-31 // electron mass, kg
	DefaultHbar       = 1.054571817e-34
	DefaultGridPoints = 1000
	DefaultNMax       = 50
	DefaultFrames     = 200
	DefaultFPS        = 20
	DefaultPeriods    = 10.0 // t_max in units of tau
	DefaultOutput     = "wavefunction.gif"
)

type Config struct {
	BoxLength  float64 `yaml:"box_length"`
	Mass       float64 `yaml:"mass"`
	Hbar       float64 `yaml:"hbar"`
	GridPoints int     `yaml:"grid_points"`
	NMax       int     `yaml:"nmax"`
	Frames     int     `yaml:"frames"`
	FPS        int     `yaml:"fps"`
	Periods    float64 `yaml:"periods"`
	Output     string  `yaml:"output"`
	Workers    int     `yaml:"workers"`
}

func DefaultConfig() *Config {
	return &Config{
		BoxLength:  DefaultBoxLength,
		Mass:       DefaultMass,
		Hbar:       DefaultHbar,
		GridPoints: DefaultGridPoints,
		NMax:       DefaultNMax,
		Frames:     DefaultFrames,
		FPS:        DefaultFPS,
		Periods:    DefaultPeriods,
		Output:     DefaultOutput,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
