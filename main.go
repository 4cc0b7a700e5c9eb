package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/jvitoroc/gocalc/calc"
	"github.com/jvitoroc/gocalc/history"
	"github.com/jvitoroc/gocalc/server"
	"github.com/mattn/go-isatty"
)

func main() {
	loadDotEnv()

	fs := osfs.New("")

	cfg, err := loadConfig(fs, os.Args[1:], os.Getenv)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(2)
	}

	setupLogger(cfg.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	prompt := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())

	if err := run(ctx, cfg, fs, os.Stdin, os.Stdout, prompt); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("gocalc failed", "mode", cfg.Mode, "error", err)
		os.Exit(1)
	}
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func run(ctx context.Context, cfg *Config, fs billy.Filesystem, stdin io.Reader, stdout io.Writer, prompt bool) error {
	opts := []calc.Option{
		calc.WithParserMode(cfg.Parser),
		calc.WithStrictLessEqual(cfg.StrictLessEqual),
		calc.WithLogger(slog.Default()),
	}

	var log *history.Log
	if cfg.History != "" {
		log = history.NewLog(fs, cfg.History)
		if cfg.Mode != ModeHistory {
			opts = append(opts, calc.WithHistory(log))
		}
	}

	c := calc.New(opts...)
	slog.Debug("session started", "session", c.ID(), "mode", cfg.Mode, "parser", cfg.Parser)

	switch cfg.Mode {
	case ModeInteractive:
		return repl(ctx, c, stdin, stdout, prompt)
	case ModeDemo:
		return c.Demo(ctx, stdout)
	case ModeFile:
		f, err := fs.Open(cfg.File)
		if err != nil {
			return fmt.Errorf("opening script: %w", err)
		}
		defer f.Close()

		return c.Run(ctx, f, stdout)
	case ModeServe:
		return server.New(&server.Config{Port: cfg.Port}, c).Start(ctx)
	case ModeHistory:
		return printHistory(ctx, log, stdout)
	}

	return fmt.Errorf("unknown mode '%s'", cfg.Mode)
}

func printHistory(ctx context.Context, log *history.Log, w io.Writer) error {
	return log.Read(ctx, func(e *history.Entry) error {
		_, err := fmt.Fprintf(w, "%08x %s\n", e.ID, e)
		return err
	})
}
