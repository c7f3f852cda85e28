package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/CTAG07/marklang/pkg/corpus"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

const defaultConfigPath = "./config.json"

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run dispatches a command line. Generated text and listings go to stdout,
// logs and usage to stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "corpus":
		return runCorpus(ctx, args[1:], stdout, stderr)
	case "generate":
		return runGenerate(ctx, args[1:], stdout, stderr)
	case "stats":
		return runStats(ctx, args[1:], stdout, stderr)
	case "version":
		fmt.Fprintf(stdout, "marklang %s (commit %s, built %s)\n", Version, Commit, BuildDate)
		return nil
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: marklang <corpus|generate|stats|version> [flags]", msg)
}

// app holds everything a command needs once the config is loaded.
type app struct {
	config *Config
	logger *slog.Logger
	db     *sql.DB
	corpus *corpus.Store
}

// newFlagSet returns a flag set that reports errors instead of exiting, with
// the -config flag every command shares.
func newFlagSet(name string, stderr io.Writer) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", defaultConfigPath, "path to the JSON config file")
	return fs, configPath
}

// loadApp reads and validates the config, then opens the corpus database.
// The override hook runs between loading and validation so that command
// flags can replace config values.
func loadApp(configPath string, stderr io.Writer, override func(*Config)) (*app, error) {
	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if override != nil {
		override(config)
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}

	logger := newLogger(stderr, config.LogLevel)

	db, err := initDB(config.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err = corpus.SetupSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to setup corpus schema: %w", err)
	}
	store, err := corpus.NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to prepare corpus store: %w", err)
	}
	store.SetLogger(logger)

	return &app{config: config, logger: logger, db: db, corpus: store}, nil
}

func (a *app) Close() {
	a.corpus.Close()
	if err := a.db.Close(); err != nil {
		a.logger.Error("Failed to close database", "error", err)
	}
}

// readInput returns the text given by exactly one of file or text.
func readInput(file, text string) (io.Reader, func(), error) {
	switch {
	case file != "" && text != "":
		return nil, nil, errors.New("use only one of -file and -text")
	case file != "":
		f, err := os.Open(file)
		if err != nil {
			return nil, nil, err
		}
		return f, func() { _ = f.Close() }, nil
	case text != "":
		return strings.NewReader(text), func() {}, nil
	default:
		return nil, nil, errors.New("one of -file or -text is required")
	}
}

// splitNames parses a comma-separated list, dropping empty entries.
func splitNames(s string) []string {
	var names []string
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}
