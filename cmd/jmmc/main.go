// Package main implements the jmmc entry point: it parses J-- source files
// and binds their type declarations.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/you-not-fish/jmm/internal/check"
	"github.com/you-not-fish/jmm/internal/config"
	"github.com/you-not-fish/jmm/internal/diag"
	"github.com/you-not-fish/jmm/internal/syntax"
)

// Compiler flags
var (
	configPath   = flag.String("config", "", "Path to TOML config file")
	emitAST      = flag.Bool("emit-ast", false, "Output AST")
	emitDecls    = flag.Bool("emit-decls", false, "Output bound declarations")
	format       = flag.String("format", "", "Output format for -emit-* (text, json or yaml)")
	maxErrors    = flag.Int("max-errors", 0, "Stop a file after this many errors (0 = no limit)")
	strictPhases = flag.Bool("strict-phases", false, "Stop a file at the first phase order violation")
	color        = flag.String("color", "", "Colorize diagnostics (auto, always or never)")
	verbose      = flag.Bool("v", false, "Enable debug logging")
	version      = flag.Bool("version", false, "Print version")
)

// Version information
const Version = "0.1.0-dev"

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "jmmc %s\n\n", Version)
		fmt.Fprintf(os.Stderr, "Usage: jmmc [options] <file.java>...\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *version {
		fmt.Printf("jmmc version %s\n", Version)
		fmt.Printf("go version %s\n", runtime.Version())
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "error: no input file")
		fmt.Fprintln(os.Stderr, "usage: jmmc [options] <file.java>...")
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	setupLogging(cfg)

	// Handle -emit-ast
	if *emitAST {
		os.Exit(runEmitAST(cfg, args))
	}

	os.Exit(runCheck(cfg, args))
}

// loadConfig reads the config file, if any, and applies the flags that
// were set on the command line.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "format":
			cfg.Emit = *format
		case "max-errors":
			cfg.MaxErrors = *maxErrors
		case "strict-phases":
			cfg.StrictPhases = *strictPhases
		case "color":
			cfg.Color = *color
		}
	})
	if *verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupLogging installs a text handler on stderr as the default logger.
func setupLogging(cfg *config.Config) {
	level, _ := cfg.Level() // validated
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

// parseFile parses one file, adding syntax errors to list.
func parseFile(filename string, list *diag.List) (*syntax.File, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	errh := func(pos syntax.Pos, msg string) {
		list.Add(diag.New(pos, diag.Syntax, "%s", msg))
	}
	p := syntax.NewParser(filename, f, errh)
	return p.Parse(), nil
}

// runEmitAST parses the input files and outputs their ASTs.
func runEmitAST(cfg *config.Config, filenames []string) int {
	if cfg.Emit == "yaml" {
		fmt.Fprintln(os.Stderr, "error: -emit-ast supports text and json")
		return 1
	}
	mode, _ := cfg.ColorMode()
	emitter := diag.NewEmitter(os.Stderr, mode)

	exit := 0
	for _, filename := range filenames {
		var list diag.List
		ast, err := parseFile(filename, &list)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			exit = 1
			continue
		}

		// Print errors first
		emitter.EmitAll(&list)
		if list.Len() > 0 {
			exit = 1
		}

		switch cfg.Emit {
		case "json":
			if err := syntax.FprintJSON(os.Stdout, ast); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				return 1
			}
		default:
			syntax.Fprint(os.Stdout, ast)
		}
	}
	return exit
}

// runCheck parses and binds each input file as one compilation unit.
// With -emit-decls the bound declarations are printed.
func runCheck(cfg *config.Config, filenames []string) int {
	mode, _ := cfg.ColorMode()
	emitter := diag.NewEmitter(os.Stderr, mode)

	exit := 0
	for _, filename := range filenames {
		code := checkFile(cfg, filename, emitter, os.Stdout)
		if code != 0 {
			exit = code
		}
	}
	return exit
}

// checkFile binds one file and reports its diagnostics.
func checkFile(cfg *config.Config, filename string, emitter *diag.Emitter, out io.Writer) int {
	var list diag.List
	ast, err := parseFile(filename, &list)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	conf := &check.Config{
		Error:        list.Handler(),
		Logger:       slog.Default(),
		MaxErrors:    cfg.MaxErrors,
		StrictPhases: cfg.StrictPhases,
	}
	unit, _ := check.Check(ast, conf, nil)
	slog.Debug("checked", "file", filename, "decls", len(unit.Decls), "errors", list.Len())

	list.Sort()
	emitter.EmitAll(&list)

	if *emitDecls {
		if err := emitSummaries(out, cfg.Emit, check.Summarize(unit)); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
	}

	if list.Len() > 0 {
		return 1
	}
	return 0
}

func emitSummaries(w io.Writer, format string, sums []check.DeclSummary) error {
	switch format {
	case "json":
		return check.FprintJSON(w, sums)
	case "yaml":
		return check.FprintYAML(w, sums)
	default:
		return check.FprintText(w, sums)
	}
}
