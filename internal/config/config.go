package config

// Settings for the nanopass command, read from a TOML file and then
// overridden by NANOPASS_* environment variables. Command-line flags are
// applied last by the caller.

import (
	"os"
	"strings"

	"github.com/pelletier/go-toml"
	"github.com/xyproto/env/v2"
	"tlog.app/go/errors"

	"nanopass/internal/callconv"
	"nanopass/internal/pipeline"
	"nanopass/internal/pretty"
)

// FileName is looked up in the working directory when no path is given
const FileName = "nanopass.toml"

// Config is the decoded configuration file
type Config struct {
	// Width is the column limit for rendered IR
	Width int `toml:"width"`

	// Stages lists the stages to print, by name
	Stages []string `toml:"stages"`

	Parallel bool `toml:"parallel"`

	// Check runs the invariant checks after every stage
	Check bool `toml:"check"`

	Color bool `toml:"color"`

	// Verbosity is passed to commonlog; 0 silences the log
	Verbosity int `toml:"verbosity"`

	// Examples restricts which examples run; empty means all of them
	Examples []string `toml:"examples"`
}

// Default returns the configuration used when nothing else is set
func Default() *Config {
	return &Config{
		Width:  pretty.DefaultWidth,
		Stages: []string{pipeline.SurfaceStage, callconv.Name},
		Check:  true,
		Color:  true,
	}
}

// Load reads path over the defaults. An empty path reads FileName if it
// exists. Environment overrides are applied afterwards.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = FileName
	}

	buf, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(buf, cfg); err != nil {
			return nil, errors.Wrap(err, "parse config %v", path)
		}
	case explicit || !os.IsNotExist(err):
		return nil, errors.Wrap(err, "read config %v", path)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config %v", path)
	}

	return cfg, nil
}

// applyEnv overrides fields from NANOPASS_* variables
func (c *Config) applyEnv() {
	c.Width = env.Int("NANOPASS_WIDTH", c.Width)
	c.Verbosity = env.Int("NANOPASS_VERBOSITY", c.Verbosity)

	if env.Has("NANOPASS_PARALLEL") {
		c.Parallel = env.Bool("NANOPASS_PARALLEL")
	}
	if env.Has("NANOPASS_CHECK") {
		c.Check = env.Bool("NANOPASS_CHECK")
	}
	if env.Has("NANOPASS_NO_COLOR") || env.Has("NO_COLOR") {
		c.Color = false
	}

	if stages := env.Str("NANOPASS_STAGES"); stages != "" {
		c.Stages = SplitList(stages)
	}
	if examples := env.Str("NANOPASS_EXAMPLES"); examples != "" {
		c.Examples = SplitList(examples)
	}
}

// Validate rejects settings the pipeline cannot honor
func (c *Config) Validate() error {
	if c.Width <= 0 {
		return errors.New("width must be positive, got %d", c.Width)
	}

	if c.Verbosity < 0 {
		return errors.New("verbosity must not be negative, got %d", c.Verbosity)
	}

	known := map[string]bool{}
	for _, name := range pipeline.StageNames() {
		known[name] = true
	}

	for _, stage := range c.Stages {
		if !known[stage] {
			return errors.New("unknown stage %q (want one of %s)", stage, strings.Join(pipeline.StageNames(), ", "))
		}
	}

	return nil
}

// Options returns the pipeline options the configuration selects
func (c *Config) Options() pipeline.Options {
	return pipeline.Options{Parallel: c.Parallel, Check: c.Check}
}

// SplitList splits a comma separated list, dropping blanks
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
