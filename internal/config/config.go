// Package config resolves runtime settings from an optional .env file,
// BLOCKFALL_* environment variables and command-line flags, in that order
// of increasing precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvSeed       = "BLOCKFALL_SEED"
	EnvBroadcast  = "BLOCKFALL_BROADCAST"
	EnvServer     = "BLOCKFALL_SERVER"
	EnvFPS        = "BLOCKFALL_FPS"
	EnvHoldWindow = "BLOCKFALL_HOLD_WINDOW"
	EnvDebug      = "BLOCKFALL_DEBUG"

	maxFPS = 240
)

type Config struct {
	// Seed for the shape source. Zero seeds from the clock.
	Seed int64
	// Broadcast is the listen address of the spectator feed. Empty disables it.
	Broadcast string
	// Server is the spectator feed URL the watch client dials.
	Server string
	FPS    int
	// HoldWindow is how long after its last key event a direction still counts as held.
	HoldWindow time.Duration
	// Debug is the log file path. Empty disables logging.
	Debug string
}

func Default() Config {
	return Config{
		Server:     "ws://localhost:8080/ws",
		FPS:        60,
		HoldWindow: 100 * time.Millisecond,
	}
}

// FrameInterval is the time between two frame ticks.
func (c Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.FPS)
}

func (c Config) Validate() error {
	if c.FPS < 1 || c.FPS > maxFPS {
		return fmt.Errorf("fps must be between 1 and %d, got %d", maxFPS, c.FPS)
	}
	if c.HoldWindow <= 0 {
		return fmt.Errorf("hold window must be positive, got %s", c.HoldWindow)
	}
	return nil
}

// Load reads ./.env if present, then the environment, then args.
func Load(name string, args []string) (Config, error) {
	return load(".env", name, args, os.Stderr)
}

func load(envFile, name string, args []string, output io.Writer) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	cfg := Default()
	if err := cfg.fromEnv(); err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "shape source seed (0 = clock)")
	fs.StringVar(&cfg.Broadcast, "broadcast", cfg.Broadcast, "serve a read-only spectator feed on this address, e.g. :8080")
	fs.StringVar(&cfg.Server, "server", cfg.Server, "spectator feed URL to watch")
	fs.IntVar(&cfg.FPS, "fps", cfg.FPS, "frames per second")
	fs.DurationVar(&cfg.HoldWindow, "hold-window", cfg.HoldWindow, "how long a key counts as held after its last event")
	fs.StringVar(&cfg.Debug, "debug", cfg.Debug, "write logs to this file")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) fromEnv() error {
	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		c.Seed = seed
	}
	if v := os.Getenv(EnvFPS); v != "" {
		fps, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvFPS, err)
		}
		c.FPS = fps
	}
	if v := os.Getenv(EnvHoldWindow); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvHoldWindow, err)
		}
		c.HoldWindow = d
	}
	if v := os.Getenv(EnvBroadcast); v != "" {
		c.Broadcast = v
	}
	if v := os.Getenv(EnvServer); v != "" {
		c.Server = v
	}
	if v := os.Getenv(EnvDebug); v != "" {
		c.Debug = v
	}
	return nil
}
