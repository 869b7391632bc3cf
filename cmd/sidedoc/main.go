package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/sidedoc/internal/config"
	"git.home.luguber.info/inful/sidedoc/internal/generate"
	"git.home.luguber.info/inful/sidedoc/internal/language"
	"git.home.luguber.info/inful/sidedoc/internal/watch"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Generate struct {
		Source string   `short:"s" help:"Source root directory (overrides config)"`
		Output string   `short:"o" help:"Output directory for generated pages (overrides config)"`
		Paths  []string `arg:"" optional:"" help:"Files or directories to process, relative to the source root"`
	} `cmd:"" default:"withargs" help:"Generate documentation pages for source files"`

	Watch struct {
		Source string `short:"s" help:"Source root directory (overrides config)"`
		Output string `short:"o" help:"Output directory for generated pages (overrides config)"`
	} `cmd:"" help:"Regenerate documentation whenever source files change"`

	Languages struct{} `cmd:"" help:"List registered language rule sets"`
}

func main() {
	// Optional .env for SIDEDOC_* overrides; absence is fine.
	_ = godotenv.Load()

	kctx := kong.Parse(&CLI)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.RegisterLanguages(); err != nil {
		slog.Error("Failed to register configured languages", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch kctx.Command() {
	case "generate", "generate <paths>":
		applyOverrides(cfg, CLI.Generate.Source, CLI.Generate.Output)
		if err := generate.New(cfg).Run(ctx, CLI.Generate.Paths); err != nil {
			slog.Error("Generation failed", "error", err)
			os.Exit(1)
		}

	case "watch":
		applyOverrides(cfg, CLI.Watch.Source, CLI.Watch.Output)
		if err := runWatch(ctx, cfg); err != nil && ctx.Err() == nil {
			slog.Error("Watch failed", "error", err)
			os.Exit(1)
		}

	case "languages":
		for _, ext := range language.Extensions() {
			if rules, ok := language.Get(ext); ok {
				fmt.Printf("%s\t%s\n", ext, rules.Name)
			}
		}

	default:
		kctx.PrintUsage(false)
		os.Exit(1)
	}
}

func applyOverrides(cfg *config.Config, source, output string) {
	if source != "" {
		cfg.Source = source
	}
	if output != "" {
		cfg.Output = output
	}
}

func runWatch(ctx context.Context, cfg *config.Config) error {
	gen := generate.New(cfg)

	// Initial full generation, then regenerate on change.
	if err := gen.Run(ctx, nil); err != nil {
		return err
	}
	watcher, err := watch.New(cfg.Source, func() error {
		return gen.Run(ctx, nil)
	})
	if err != nil {
		return err
	}
	return watcher.Run(ctx)
}
