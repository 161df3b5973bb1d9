package config

import "math"

var Presets = map[string]*Config{
	"default": {
		BoxLength: DefaultBoxLength, Mass: DefaultMass, Hbar: DefaultHbar,
		GridPoints: 1000, NMax: 50, Frames: 200, FPS: 20,
		Periods: 10.0, Output: "wavefunction.gif",
	},
	"quick": {
		BoxLength: DefaultBoxLength, Mass: DefaultMass, Hbar: DefaultHbar,
		GridPoints: 200, NMax: 25, Frames: 60, FPS: 15,
		Periods: 4.0, Output: "wavefunction_quick.gif",
	},
	"fine": {
		BoxLength: DefaultBoxLength, Mass: DefaultMass, Hbar: DefaultHbar,
		GridPoints: 2000, NMax: 150, Frames: 400, FPS: 25,
		Periods: 10.0, Output: "wavefunction_fine.gif",
	},
	// One full density revival: the phase differences are all integer
	// multiples of t/tau, so t_max = 2*pi*tau maps the last frame back
	// onto the first.
	"revival": {
		BoxLength: DefaultBoxLength, Mass: DefaultMass, Hbar: DefaultHbar,
		GridPoints: 1000, NMax: 50, Frames: 250, FPS: 25,
		Periods: 2 * math.Pi, Output: "wavefunction_revival.gif",
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
