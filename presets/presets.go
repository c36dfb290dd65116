// Package presets loads PIDPlus tuning — gains and a declarative list of
// built-in modifiers — from YAML, so a deployment's control-loop tuning
// can live in a config file instead of a recompile.
package presets

import (
	"fmt"
	"os"

	"github.com/outofmbufs/pidcontrol"
	"gopkg.in/yaml.v3"
)

// Config describes one PIDPlus's tuning.
type Config struct {
	Kp        float64  `yaml:"kp"`
	Ki        float64  `yaml:"ki"`
	Kd        float64  `yaml:"kd"`
	DefaultDt *float64 `yaml:"default_dt"`

	Modifiers []ModifierConfig `yaml:"modifiers"`
}

// ModifierConfig names one built-in modifier and its arguments. Only
// Kind is required; the fields relevant to that kind are read, and the
// rest are ignored.
type ModifierConfig struct {
	Kind string `yaml:"kind"`

	Secs       float64  `yaml:"secs"`
	HiddenRamp bool     `yaml:"hidden_ramp"`
	Threshold  float64  `yaml:"threshold"`
	Limit      *float64 `yaml:"limit"`
	Lo         float64  `yaml:"lo"`
	Hi         float64  `yaml:"hi"`
	DelaySecs  float64  `yaml:"delay_secs"`
	Size       float64  `yaml:"size"`
	Kickfilter bool     `yaml:"kickfilter"`
	N          int      `yaml:"n"`
	Detail     bool     `yaml:"detail"`
	Prefix     string   `yaml:"prefix"`

	// bang_bang. OnThreshold/OffThreshold left nil select the
	// single-threshold classification rules; both nil keeps the library
	// default of both thresholds at 0.
	OnThreshold  *float64 `yaml:"on_threshold"`
	OffThreshold *float64 `yaml:"off_threshold"`
	OnValue      *float64 `yaml:"on_value"`
	OffValue     *float64 `yaml:"off_value"`
	DeadValue    *float64 `yaml:"dead_value"`
}

// Default returns a Config for an untuned unity-gain PID with no
// modifiers: a starting point meant to be overridden, not deployed.
func Default() *Config {
	return &Config{Kp: 1, Ki: 0, Kd: 0}
}

// Load reads a Config from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("presets: read %s: %w", path, err)
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("presets: parse %s: %w", path, err)
	}
	return &c, nil
}

// Build constructs a PIDPlus from c: its gains, its default dt if one is
// set, and each of its modifiers in order.
func (c *Config) Build() (*pidcontrol.PIDPlus, error) {
	mods := make([]pidcontrol.Modifier, 0, len(c.Modifiers))
	for i, mc := range c.Modifiers {
		m, err := mc.build()
		if err != nil {
			return nil, fmt.Errorf("presets: modifiers[%d] (%s): %w", i, mc.Kind, err)
		}
		mods = append(mods, m)
	}

	var opts []pidcontrol.Option
	if c.DefaultDt != nil {
		opts = append(opts, pidcontrol.WithDefaultDt(*c.DefaultDt))
	}

	return pidcontrol.NewPIDPlus(c.Kp, c.Ki, c.Kd, mods, opts...)
}

func (mc *ModifierConfig) build() (pidcontrol.Modifier, error) {
	switch mc.Kind {
	case "setpoint_ramp":
		var opts []pidcontrol.RampOption
		if mc.HiddenRamp {
			opts = append(opts, pidcontrol.WithHiddenRamp())
		}
		if mc.Threshold != 0 {
			opts = append(opts, pidcontrol.WithRampThreshold(mc.Threshold))
		}
		return pidcontrol.NewSetpointRamp(mc.Secs, opts...)
	case "i_windup":
		if mc.Limit != nil {
			return pidcontrol.NewIWindup(*mc.Limit)
		}
		return pidcontrol.NewIWindup(mc.Lo, mc.Hi)
	case "i_setpoint_reset":
		return pidcontrol.NewISetpointReset(mc.DelaySecs), nil
	case "i_freeze":
		return pidcontrol.NewIFreeze(), nil
	case "dead_band":
		return pidcontrol.NewDeadBand(mc.Size), nil
	case "bang_bang":
		var opts []pidcontrol.BangBangOption
		switch {
		case mc.OnThreshold != nil && mc.OffThreshold != nil:
			opts = append(opts, pidcontrol.WithOnThreshold(*mc.OnThreshold), pidcontrol.WithOffThreshold(*mc.OffThreshold))
		case mc.OnThreshold != nil:
			opts = append(opts, pidcontrol.WithOnThreshold(*mc.OnThreshold), pidcontrol.WithoutOffThreshold())
		case mc.OffThreshold != nil:
			opts = append(opts, pidcontrol.WithoutOnThreshold(), pidcontrol.WithOffThreshold(*mc.OffThreshold))
		}
		if mc.OnValue != nil || mc.OffValue != nil {
			on, off := 1.0, 0.0
			if mc.OnValue != nil {
				on = *mc.OnValue
			}
			if mc.OffValue != nil {
				off = *mc.OffValue
			}
			opts = append(opts, pidcontrol.WithBangBangValues(on, off))
		}
		if mc.DeadValue != nil {
			opts = append(opts, pidcontrol.WithDeadValue(*mc.DeadValue))
		}
		return pidcontrol.NewBangBang(opts...), nil
	case "d_delta_e":
		return pidcontrol.NewDDeltaE(mc.Kickfilter), nil
	case "pid_history":
		var opts []pidcontrol.HistoryOption
		if mc.Detail {
			opts = append(opts, pidcontrol.WithHistoryDetail())
		}
		return pidcontrol.NewPIDHistory(mc.N, opts...), nil
	case "event_print":
		return pidcontrol.NewEventPrint(mc.Prefix), nil
	default:
		return nil, fmt.Errorf("unknown modifier kind %q", mc.Kind)
	}
}
