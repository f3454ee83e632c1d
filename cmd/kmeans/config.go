package main

import (
	"flag"
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config holds the tunables of a run. It can be loaded from a TOML file and
// is overridden by flags given on the command line.
type Config struct {
	// Seed of the pseudorandom source. Current Unix time when unset.
	Seed *int64 `toml:"seed"`

	// 0 sizes the worker pool from the data set.
	Workers int `toml:"workers"`

	// 0 iterates until convergence.
	MaxIterations int `toml:"max_iterations"`

	Sampling     string `toml:"sampling"`
	EmptyCluster string `toml:"empty_cluster"`
	LogLevel     string `toml:"log_level"`
}

func defaultConfig() Config {
	return Config{
		Workers:       1,
		MaxIterations: 10000,
		Sampling:      "rejection",
		EmptyCluster:  "fail",
		LogLevel:      "info",
	}
}

func loadConfig(path string, c *Config) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return fmt.Errorf("loading config %s: %w", path, err)
	}

	if u := md.Undecoded(); len(u) > 0 {
		return fmt.Errorf("loading config %s: unknown keys %v", path, u)
	}

	return nil
}

type flags struct {
	config        string
	seed          int64
	workers       int
	maxIterations int
	sampling      string
	emptyCluster  string
	logLevel      string
}

func (f *flags) register(fs *flag.FlagSet) {
	d := defaultConfig()

	fs.StringVar(&f.config, "config", "", "TOML file with run settings")
	fs.Int64Var(&f.seed, "seed", 0, "seed of the pseudorandom source (default: current time)")
	fs.IntVar(&f.workers, "workers", d.Workers, "goroutines used for the assignment phase, 0 sizes from data")
	fs.IntVar(&f.maxIterations, "max-iter", d.MaxIterations, "iteration cap, 0 for none")
	fs.StringVar(&f.sampling, "sampling", d.Sampling, "seed sampling: rejection or shuffle")
	fs.StringVar(&f.emptyCluster, "empty", d.EmptyCluster, "empty cluster policy: fail or reseed")
	fs.StringVar(&f.logLevel, "log-level", d.LogLevel, "log level: debug, info, warn, error")
}

// resolve builds the effective Config: defaults, then the config file, then
// every flag set explicitly.
func (f *flags) resolve(fs *flag.FlagSet) (Config, error) {
	c := defaultConfig()

	if f.config != "" {
		if err := loadConfig(f.config, &c); err != nil {
			return Config{}, err
		}
	}

	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "seed":
			s := f.seed
			c.Seed = &s
		case "workers":
			c.Workers = f.workers
		case "max-iter":
			c.MaxIterations = f.maxIterations
		case "sampling":
			c.Sampling = f.sampling
		case "empty":
			c.EmptyCluster = f.emptyCluster
		case "log-level":
			c.LogLevel = f.logLevel
		}
	})

	return c, nil
}
