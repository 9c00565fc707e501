package core

import (
	"log/slog"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

const DefaultMaxCallDepth = 1024

type Config struct {
	// MaxCallDepth bounds nested function calls.
	MaxCallDepth int `toml:"max_call_depth"`

	// StrictTypes rejects annotations other than int, str, bool and
	// function instead of letting them pass unchecked.
	StrictTypes bool `toml:"strict_types"`

	// Preludes names registered modules to import before running.
	Preludes []string `toml:"preludes"`

	Logger *slog.Logger `toml:"-"`
}

func DefaultConfig() Config {
	return Config{
		MaxCallDepth: DefaultMaxCallDepth,
		Preludes:     []string{},
	}
}

// LoadConfig decodes a TOML file over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	md, err := toml.DecodeFile(path, &config)
	if err != nil {
		return Config{}, errors.Wrapf(err, "parsing %s", path)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.Errorf("parsing %s: unknown key %s", path, undecoded[0])
	}

	if config.MaxCallDepth <= 0 {
		return Config{}, errors.Errorf("parsing %s: max_call_depth must be positive, got %d", path, config.MaxCallDepth)
	}

	return config, nil
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}
