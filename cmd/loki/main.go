package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/vk/loki/internal/app"
	"github.com/vk/loki/internal/cli"
	"github.com/vk/loki/internal/toolchain"
)

// main is the entrypoint for the loki build tool.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Stdout, os.Stderr, os.Args[1:], nil)
	stop()

	// The real main function handles errors and exit codes.
	if err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling. runner overrides process spawning when non-nil.
func run(ctx context.Context, outW, errW io.Writer, args []string, runner toolchain.Runner) error {
	cmd, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit || cmd != cli.CommandBuild {
		return nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("determine working directory: %w", err)
	}
	cfg, err := app.NewConfig(app.Config{WorkDir: wd, Runner: runner})
	if err != nil {
		return err
	}

	loki, err := app.NewApp(outW, errW, cfg)
	if err != nil {
		return &cli.ExitError{Code: 2, Message: err.Error()}
	}

	if _, err := loki.Build(ctx); err != nil {
		return &cli.ExitError{Code: 1, Message: "error: build failed: " + err.Error()}
	}
	return nil
}
