// cmd/brownstone-gen/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

// run executes the generator and returns an exit code.
// It exists separately from main to allow unit testing without os.Exit.
func run(ctx context.Context, args []string, stderr io.Writer, getenv func(string) string) int {
	cfg, err := loadConfig(args, stderr, getenv)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			_, _ = fmt.Fprintln(stderr, err)
		}
		return 2
	}

	log := newLogger(stderr, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	if err := execute(ctx, cfg, log); err != nil {
		log.Error("generation failed", zap.Error(err))
		return 1
	}
	return 0
}

func execute(ctx context.Context, cfg Config, log *zap.Logger) error {
	if cfg.Dir == "" {
		return generateFile(cfg.SpecPath, cfg.OutPath, log)
	}

	if err := generateDir(ctx, cfg.Dir, cfg.Workers, log); err != nil {
		return err
	}
	if !cfg.Watch {
		return nil
	}
	return watchDir(ctx, cfg.Dir, log)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stderr, os.Getenv)
	stop()
	os.Exit(code)
}
