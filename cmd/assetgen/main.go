package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/wippyai/assetgen/envmap"
	"github.com/wippyai/assetgen/generate"
	"github.com/wippyai/assetgen/tables"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#90EE90"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	pathStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB"))
)

func main() {
	var (
		root        = flag.String("root", ".", "Repository root the default paths are resolved against")
		source      = flag.String("source", "", "Table source file (default <root>/src/surface.js)")
		tablesOut   = flag.String("tables-out", "", "Table artifact (default <root>/wasm/ses/src/tables.rs)")
		assetsDir   = flag.String("assets", "", "glTF fixture directory (default <root>/assets)")
		envDir      = flag.String("env-dir", "", "Environment map directory (default <root>/assets/env)")
		format      = flag.String("format", string(tables.FormatRust), "Table artifact format: rust or go")
		verbose     = flag.Bool("v", false, "Verbose logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: assetgen [flags] [tables|examples|env|all]")
		fmt.Fprintln(os.Stderr, "       assetgen -i  (interactive mode)")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg := generate.DefaultConfig(*root)
	if *source != "" {
		cfg.SourcePath = *source
	}
	if *tablesOut != "" {
		cfg.TablesOut = *tablesOut
	}
	if *assetsDir != "" {
		cfg.AssetsDir = *assetsDir
	}
	if *envDir != "" {
		cfg.EnvDir = *envDir
	}
	cfg.Format = tables.Format(*format)

	logger, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	generate.SetLogger(logger)

	if *interactive {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(cfg, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cmd := "all"
	if flag.NArg() > 0 {
		cmd = flag.Arg(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cmd, cfg, logger); err != nil {
		fmt.Fprintln(os.Stderr, styled(failStyle, "Error: "+err.Error()))
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

func run(ctx context.Context, cmd string, cfg generate.Config, logger *zap.Logger) error {
	switch cmd {
	case "tables":
		if err := generate.Tables(cfg); err != nil {
			return err
		}
		report(cfg.TablesOut)
	case "examples":
		paths, err := generate.Examples(cfg)
		for _, p := range paths {
			report(p)
		}
		return err
	case "env":
		f := envmap.NewHTTPFetcher(envmap.WithLogger(logger))
		return generate.EnvMaps(ctx, cfg, f, envmap.DefaultMaps)
	case "all":
		since := time.Now().Truncate(time.Second)
		err := generate.All(cfg)
		// Jobs are isolated, so some artifacts land even when another fails.
		for _, p := range written(artifactPaths(cfg), since) {
			report(p)
		}
		return err
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

func artifactPaths(cfg generate.Config) []string {
	paths := []string{cfg.TablesOut}
	for _, name := range exampleNames() {
		paths = append(paths, cfg.AssetPath(name))
	}
	return paths
}

// written filters paths down to files modified at or after since.
func written(paths []string, since time.Time) []string {
	var out []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil || info.ModTime().Before(since) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func report(path string) {
	fmt.Println(styled(okStyle, "wrote") + " " + styled(pathStyle, path))
}

// styled renders s with style only when stdout is a terminal.
func styled(style lipgloss.Style, s string) string {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return s
	}
	return style.Render(s)
}
