package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/natefinch/atomic"
)

func runCorpus(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		return usageError("missing corpus command (add|append|list|remove|export)")
	}

	switch args[0] {
	case "add":
		return runCorpusAdd(ctx, args[1:], stdout, stderr, false)
	case "append":
		return runCorpusAdd(ctx, args[1:], stdout, stderr, true)
	case "list":
		return runCorpusList(ctx, args[1:], stdout, stderr)
	case "remove":
		return runCorpusRemove(ctx, args[1:], stdout, stderr)
	case "export":
		return runCorpusExport(ctx, args[1:], stdout, stderr)
	default:
		return usageError(fmt.Sprintf("unknown corpus command: %s", args[0]))
	}
}

// runCorpusAdd cleans the input and stores it, either as a new text or
// appended to an existing one.
func runCorpusAdd(ctx context.Context, args []string, stdout, stderr io.Writer, appendMode bool) error {
	name := "add"
	if appendMode {
		name = "append"
	}
	fs, configPath := newFlagSet("corpus "+name, stderr)
	textName := fs.String("name", "", "name of the corpus text")
	file := fs.String("file", "", "raw text file to clean and store")
	text := fs.String("text", "", "raw text to clean and store")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *textName == "" {
		return errors.New("-name is required")
	}

	a, err := loadApp(*configPath, stderr, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	r, done, err := readInput(*file, *text)
	if err != nil {
		return err
	}
	defer done()

	body, err := a.config.Cleaner.NewCleaner().Clean(r)
	if err != nil {
		return fmt.Errorf("failed to clean input: %w", err)
	}

	store := a.corpus.Add
	if appendMode {
		store = a.corpus.Append
	}
	info, err := store(ctx, *textName, body)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "%s: %s symbols\n", info.Name, humanize.Comma(int64(info.Symbols)))
	return nil
}

func runCorpusList(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs, configPath := newFlagSet("corpus list", stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := loadApp(*configPath, stderr, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	infos, err := a.corpus.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list corpus: %w", err)
	}
	for _, info := range infos {
		fmt.Fprintf(stdout, "%-24s %12s  added %s\n", info.Name, humanize.Comma(int64(info.Symbols)), humanize.Time(info.AddedAt))
	}

	stats, err := a.corpus.Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to get corpus stats: %w", err)
	}
	fmt.Fprintf(stdout, "%d texts, %s symbols\n", stats.Texts, humanize.Comma(int64(stats.Symbols)))
	return nil
}

func runCorpusRemove(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs, configPath := newFlagSet("corpus remove", stderr)
	textName := fs.String("name", "", "name of the corpus text")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *textName == "" {
		return errors.New("-name is required")
	}

	a, err := loadApp(*configPath, stderr, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	if err = a.corpus.Remove(ctx, *textName); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "removed %s\n", *textName)
	return nil
}

// runCorpusExport writes a stored text to a file. The write is atomic, so an
// existing file is either fully replaced or left as it was.
func runCorpusExport(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs, configPath := newFlagSet("corpus export", stderr)
	textName := fs.String("name", "", "name of the corpus text")
	out := fs.String("out", "", "destination file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *textName == "" || *out == "" {
		return errors.New("-name and -out are required")
	}

	a, err := loadApp(*configPath, stderr, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	text, err := a.corpus.Get(ctx, *textName)
	if err != nil {
		return err
	}
	if err = atomic.WriteFile(*out, strings.NewReader(text.Body)); err != nil {
		return fmt.Errorf("failed to write %s: %w", *out, err)
	}
	fmt.Fprintf(stdout, "exported %s to %s (%s)\n", text.Name, *out, humanize.Bytes(uint64(len(text.Body))))
	return nil
}
