package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"

	"go.uber.org/zap/zapcore"
)

// Environment variables supplying flag defaults.
const (
	envLogLevel = "BROWNSTONE_LOG_LEVEL"
	envWorkers  = "BROWNSTONE_WORKERS"
)

// errUsage reports a command line that cannot be acted on.
var errUsage = errors.New("usage: brownstone-gen -spec <file.array.json> -out <file.gen.go> | -dir <dir> [-watch] [-workers n] [-v]")

// Config is the resolved generator configuration.
type Config struct {
	SpecPath string
	OutPath  string
	Dir      string
	Workers  int
	Watch    bool
	LogLevel zapcore.Level
}

// loadConfig parses args with environment defaults read through getenv.
func loadConfig(args []string, stderr io.Writer, getenv func(string) string) (Config, error) {
	cfg := Config{
		Workers:  getenvInt(getenv, envWorkers, runtime.GOMAXPROCS(0)),
		LogLevel: zapcore.InfoLevel,
	}
	if v := strings.TrimSpace(getenv(envLogLevel)); v != "" {
		lvl, err := zapcore.ParseLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", envLogLevel, err)
		}
		cfg.LogLevel = lvl
	}

	flags := flag.NewFlagSet("brownstone-gen", flag.ContinueOnError)
	flags.SetOutput(stderr)

	flags.StringVar(&cfg.SpecPath, "spec", "", "path to a single *.array.json|yaml spec")
	flags.StringVar(&cfg.OutPath, "out", "", "output .gen.go file path (with -spec)")
	flags.StringVar(&cfg.Dir, "dir", "", "generate every *.array.{json,yaml,yml} under dir")
	flags.IntVar(&cfg.Workers, "workers", cfg.Workers, "concurrent generations with -dir (env "+envWorkers+")")
	flags.BoolVar(&cfg.Watch, "watch", false, "with -dir, regenerate on spec changes until interrupted")
	verbose := flags.Bool("v", false, "debug logging (env "+envLogLevel+")")

	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}
	if *verbose {
		cfg.LogLevel = zapcore.DebugLevel
	}

	cfg.SpecPath = strings.TrimSpace(cfg.SpecPath)
	cfg.OutPath = strings.TrimSpace(cfg.OutPath)
	cfg.Dir = strings.TrimSpace(cfg.Dir)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	single := c.SpecPath != "" || c.OutPath != ""
	switch {
	case single && c.Dir != "":
		return fmt.Errorf("%w (-spec/-out and -dir are exclusive)", errUsage)
	case single && (c.SpecPath == "" || c.OutPath == ""):
		return errUsage
	case !single && c.Dir == "":
		return errUsage
	case c.Watch && c.Dir == "":
		return fmt.Errorf("%w (-watch requires -dir)", errUsage)
	case c.Workers <= 0:
		return fmt.Errorf("-workers must be > 0; got %d", c.Workers)
	}
	return nil
}

func getenvInt(getenv func(string) string, k string, def int) int {
	v := getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
