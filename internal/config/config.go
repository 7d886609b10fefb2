// ABOUTME: Demo script loading: built-in defaults overlaid with a YAML file
// ABOUTME: Non-zero file values override the defaults field by field

package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mauromedda/termprogress/pkg/progress"
)

// Script describes what the demo shows and how fast.
type Script struct {
	Delay   time.Duration `yaml:"delay,omitempty"`
	Steps   int           `yaml:"steps,omitempty"`
	Rate    float64       `yaml:"rate,omitempty"`
	Bar     BarScript     `yaml:"bar,omitempty"`
	Percent PercentScript `yaml:"percent,omitempty"`
	Spinner SpinnerScript `yaml:"spinner,omitempty"`
}

// BarScript configures the bar run.
type BarScript struct {
	Label         string `yaml:"label,omitempty"`
	TrailingLabel string `yaml:"trailing_label,omitempty"`
	Max           int    `yaml:"max,omitempty"`
	Width         int    `yaml:"width,omitempty"`
	Step          int    `yaml:"step,omitempty"`
}

// PercentScript configures the percentage run.
type PercentScript struct {
	Label         string `yaml:"label,omitempty"`
	TrailingLabel string `yaml:"trailing_label,omitempty"`
	Max           int    `yaml:"max,omitempty"`
	Step          int    `yaml:"step,omitempty"`
}

// SpinnerScript configures the spinner run.
type SpinnerScript struct {
	Label         string `yaml:"label,omitempty"`
	TrailingLabel string `yaml:"trailing_label,omitempty"`
}

// Default returns the built-in demo: 100 steps of 50ms each.
func Default() *Script {
	return &Script{
		Delay: 50 * time.Millisecond,
		Steps: 100,
		Rate:  4,
		Bar: BarScript{
			Label:         "downloading",
			TrailingLabel: "linux.tar.gz",
			Max:           2560,
			Width:         20,
			Step:          15,
		},
		Percent: PercentScript{
			Label:         "processing",
			TrailingLabel: "done",
			Max:           2560,
			Step:          15,
		},
		Spinner: SpinnerScript{
			Label:         "working",
			TrailingLabel: "(please wait)",
		},
	}
}

// Load returns the defaults overlaid with the script at path. An empty
// path tries the global script file and silently skips it when absent.
// ${VAR} references in labels are expanded.
func Load(path string) (*Script, error) {
	explicit := path != ""
	if !explicit {
		path = GlobalScriptFile()
	}

	file, err := loadFile(path)
	switch {
	case err == nil:
	case !explicit && errors.Is(err, os.ErrNotExist):
		file = nil
	default:
		return nil, fmt.Errorf("loading demo script: %w", err)
	}

	s := merge(Default(), file)
	ResolveEnvVars(s)
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid demo script %s: %w", path, err)
	}
	return s, nil
}

// Validate rejects scripts the demo cannot run.
func (s *Script) Validate() error {
	var errs []error
	if s.Delay < 0 {
		errs = append(errs, fmt.Errorf("delay must not be negative, got %v", s.Delay))
	}
	if s.Steps < 0 {
		errs = append(errs, fmt.Errorf("steps must not be negative, got %d", s.Steps))
	}
	switch {
	case s.Rate < 0 || math.IsNaN(s.Rate):
		errs = append(errs, fmt.Errorf("rate must be a non-negative number, got %v", s.Rate))
	case s.Rate != 0 && s.Rate < progress.MinRate:
		errs = append(errs, fmt.Errorf("rate must be 0 or at least %v, got %v", progress.MinRate, s.Rate))
	}
	if s.Bar.Width <= 2 {
		errs = append(errs, fmt.Errorf("bar width must be greater than 2, got %d", s.Bar.Width))
	}
	if s.Bar.Max < 0 || s.Percent.Max < 0 {
		errs = append(errs, errors.New("max values must not be negative"))
	}
	return errors.Join(errs...)
}

// loadFile reads a Script from a YAML file.
func loadFile(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}

// merge overlays the non-zero fields of file onto base.
func merge(base, file *Script) *Script {
	if base == nil {
		base = &Script{}
	}
	if file == nil {
		return base
	}

	result := *base

	if file.Delay != 0 {
		result.Delay = file.Delay
	}
	if file.Steps != 0 {
		result.Steps = file.Steps
	}
	if file.Rate != 0 {
		result.Rate = file.Rate
	}

	overlayString(&result.Bar.Label, file.Bar.Label)
	overlayString(&result.Bar.TrailingLabel, file.Bar.TrailingLabel)
	overlayInt(&result.Bar.Max, file.Bar.Max)
	overlayInt(&result.Bar.Width, file.Bar.Width)
	overlayInt(&result.Bar.Step, file.Bar.Step)

	overlayString(&result.Percent.Label, file.Percent.Label)
	overlayString(&result.Percent.TrailingLabel, file.Percent.TrailingLabel)
	overlayInt(&result.Percent.Max, file.Percent.Max)
	overlayInt(&result.Percent.Step, file.Percent.Step)

	overlayString(&result.Spinner.Label, file.Spinner.Label)
	overlayString(&result.Spinner.TrailingLabel, file.Spinner.TrailingLabel)

	return &result
}

func overlayString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func overlayInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}
