package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/CTAG07/marklang/pkg/corpus"
	"github.com/CTAG07/marklang/pkg/markov"
	"github.com/dustin/go-humanize"
)

// trainFlags are the flags shared by commands that build a model.
type trainFlags struct {
	corpora *string
	file    *string
	order   *int
}

func addTrainFlags(fs *flag.FlagSet) trainFlags {
	return trainFlags{
		corpora: fs.String("corpus", "", "comma-separated corpus texts to train on (default: all, unless -file is given)"),
		file:    fs.String("file", "", "raw text file to clean and train on"),
		order:   fs.Int("order", 0, "window order (default from config)"),
	}
}

func runGenerate(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs, configPath := newFlagSet("generate", stderr)
	tf := addTrainFlags(fs)
	length := fs.Int("length", 0, "runes per sample (default from config)")
	count := fs.Int("count", 0, "number of samples (default from config)")
	seed := fs.Uint64("seed", 0, "random seed; 0 picks one (default from config)")
	clamp := fs.Bool("clamp", false, "pick the last transition instead of stopping on rounding shortfall")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := loadApp(*configPath, stderr, func(c *Config) {
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "order":
				c.Model.Order = *tf.order
			case "length":
				c.Model.Length = *length
			case "count":
				c.Model.Count = *count
			case "seed":
				c.Model.Seed = *seed
			case "clamp":
				c.Model.ClampRounding = *clamp
			}
		})
	})
	if err != nil {
		return err
	}
	defer a.Close()

	m, err := a.buildModel(ctx, tf)
	if err != nil {
		return err
	}

	for i := 0; i < a.config.Model.Count; i++ {
		sample, err := m.Generate(a.config.Model.Length)
		if err != nil {
			return fmt.Errorf("generation failed: %w", err)
		}
		fmt.Fprintln(stdout, sample)
	}
	return nil
}

func runStats(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs, configPath := newFlagSet("stats", stderr)
	tf := addTrainFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := loadApp(*configPath, stderr, func(c *Config) {
		fs.Visit(func(f *flag.Flag) {
			if f.Name == "order" {
				c.Model.Order = *tf.order
			}
		})
	})
	if err != nil {
		return err
	}
	defer a.Close()

	m, err := a.buildModel(ctx, tf)
	if err != nil {
		return err
	}

	s := m.Stats()
	fmt.Fprintf(stdout, "order        %d\n", s.Order)
	fmt.Fprintf(stdout, "windows      %s\n", humanize.Comma(int64(s.Windows)))
	fmt.Fprintf(stdout, "transitions  %s\n", humanize.Comma(int64(s.Transitions)))
	fmt.Fprintf(stdout, "observed     %s\n", humanize.Comma(int64(s.TotalCount)))
	fmt.Fprintf(stdout, "dead ends    %s\n", humanize.Comma(int64(s.DeadEnds)))
	return nil
}

// buildModel creates a fresh model and fits it on the selected corpus texts
// and/or the cleaned contents of a file. Each text is fitted separately, so no
// transition spans two texts.
func (a *app) buildModel(ctx context.Context, tf trainFlags) (*markov.Model, error) {
	opts := []markov.Option{
		markov.WithLogger(a.logger),
		markov.WithRoundingClamp(a.config.Model.ClampRounding),
	}
	if a.config.Model.Seed != 0 {
		opts = append(opts, markov.WithSeed(a.config.Model.Seed))
	}
	m, err := markov.New(a.config.Model.Order, opts...)
	if err != nil {
		return nil, err
	}

	names := splitNames(*tf.corpora)
	if len(names) > 0 || *tf.file == "" {
		err = a.corpus.Each(ctx, names, func(text corpus.Text) error {
			return a.fit(m, text.Name, text.Body)
		})
		if err != nil {
			return nil, err
		}
	}

	if *tf.file != "" {
		f, err := os.Open(*tf.file)
		if err != nil {
			return nil, err
		}
		defer func(f *os.File) {
			_ = f.Close()
		}(f)

		body, err := a.config.Cleaner.NewCleaner().Clean(f)
		if err != nil {
			return nil, fmt.Errorf("failed to clean %s: %w", *tf.file, err)
		}
		if err = a.fit(m, *tf.file, body); err != nil {
			return nil, err
		}
	}

	if !m.Trained() {
		return nil, errors.New("no training text long enough for the configured order")
	}
	return m, nil
}

// fit trains m on one text. Texts too short for the order are skipped with a
// warning rather than failing the whole run.
func (a *app) fit(m *markov.Model, name, body string) error {
	err := m.Fit(body)
	if errors.Is(err, markov.ErrTooShort) {
		a.logger.Warn("Skipping text too short for model order", "text", name, "error", err)
		return nil
	}
	return err
}
