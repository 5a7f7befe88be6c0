// Package config assembles the run configuration of the intcode command from
// environment defaults and an optional TOML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"gitlab.com/efronlicht/enve"
)

// Config describes how to run a program.
type Config struct {
	// Program names the program text file; empty means standard input.
	Program string `toml:"program"`

	Inputs   []int64 `toml:"inputs"`
	Phases   []int64 `toml:"phases"`
	Feedback bool    `toml:"feedback"`
	Search   bool    `toml:"search"`
	ASCII    bool    `toml:"ascii"`

	Trace     bool     `toml:"trace"`
	Timeout   Duration `toml:"timeout"`
	MemLimit  uint     `toml:"mem-limit"`
	StepLimit uint64   `toml:"step-limit"`

	Dump bool `toml:"dump"`

	// Log names a file to write trace and other log entries to while running.
	Log string `toml:"log"`

	// Save names a file to write a snapshot of the final machine to; Resume
	// names a snapshot file to run instead of a program.
	Save   string `toml:"save"`
	Resume string `toml:"resume"`
}

// Environment variables read by FromEnv.
const (
	EnvTrace     = "INTCODE_TRACE"
	EnvTimeout   = "INTCODE_TIMEOUT"
	EnvMemLimit  = "INTCODE_MEM_LIMIT"
	EnvStepLimit = "INTCODE_STEP_LIMIT"
)

// FromEnv returns a Config with defaults taken from the environment.
func FromEnv() Config {
	return Config{
		Trace:     enve.BoolOr(EnvTrace, false),
		Timeout:   Duration(enve.DurationOr(EnvTimeout, 0)),
		MemLimit:  uint(enve.IntOr(EnvMemLimit, 0)),
		StepLimit: enve.Uint64Or(EnvStepLimit, 0),
	}
}

// Load overlays the TOML file at path onto cfg; only keys present in the
// file are changed. A relative program path is resolved against the
// directory containing the file.
func Load(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", path, err)
	}

	prior := cfg.Program
	cfg.Program = ""
	if err := toml.Unmarshal(data, cfg); err != nil {
		cfg.Program = prior
		return fmt.Errorf("parse error in %s: %w", path, err)
	}

	if cfg.Program == "" {
		cfg.Program = prior
	} else if !filepath.IsAbs(cfg.Program) {
		cfg.Program = filepath.Join(filepath.Dir(path), cfg.Program)
	}
	return nil
}

// Duration is a time.Duration written as text like "1m30s", in TOML files
// as well as on the command line.
type Duration time.Duration

func (d Duration) String() string { return time.Duration(d).String() }

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	return d.Set(string(text))
}

// MarshalText formats the duration as a string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Set implements flag.Value.
func (d *Duration) Set(s string) error {
	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}
