package textclean

import (
	"bufio"
	"errors"
	"io"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultDropPattern matches every rune that is not a letter with a case or
// an uncased letter (such as CJK). Digits, punctuation, marks and whitespace
// are dropped.
const DefaultDropPattern = `[^\p{Ll}\p{Lu}\p{Lt}\p{Lo}]`

// Cleaner prepares raw text for training. It folds case and strips the runes
// that the model should not see. Its behavior can be customized with
// functional options.
type Cleaner struct {
	lowercase    bool
	lang         language.Tag
	dropRegex    *regexp.Regexp
	keepNewlines bool
}

// Option Is a function that configures a Cleaner.
type Option func(*Cleaner)

// WithLowercase sets whether text is lower-cased before filtering.
// Default: true
func WithLowercase(lower bool) Option {
	return func(c *Cleaner) {
		c.lowercase = lower
	}
}

// WithLanguage sets the language whose casing rules are used when
// lower-casing, e.g. language.Turkish for dotted and dotless i.
// Default: language.Und
func WithLanguage(tag language.Tag) Option {
	return func(c *Cleaner) {
		c.lang = tag
	}
}

// WithDropPattern sets the regex string matching text to remove after case
// folding. It panics if pattern does not compile; use WithDropRegex with a
// pattern from regexp.Compile to handle the error instead.
// Default: DefaultDropPattern
func WithDropPattern(pattern string) Option {
	return WithDropRegex(regexp.MustCompile(pattern))
}

// WithDropRegex is like WithDropPattern but takes a compiled regex. A nil
// regex is ignored.
func WithDropRegex(re *regexp.Regexp) Option {
	return func(c *Cleaner) {
		if re != nil {
			c.dropRegex = re
		}
	}
}

// WithKeepNewlines sets whether input lines stay separated by "\n" in the
// output instead of being joined directly.
func WithKeepNewlines(keep bool) Option {
	return func(c *Cleaner) {
		c.keepNewlines = keep
	}
}

// New creates a new cleaner with default settings, which can be overridden by
// providing one or more Option functions.
func New(opts ...Option) *Cleaner {
	c := &Cleaner{
		lowercase: true,
		lang:      language.Und,
		dropRegex: regexp.MustCompile(DefaultDropPattern),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// CleanString returns s with case folded and dropped runes removed.
func (c *Cleaner) CleanString(s string) string {
	if c.lowercase {
		// cases.Caser is stateful, so each call gets its own.
		s = cases.Lower(c.lang).String(s)
	}
	return c.dropRegex.ReplaceAllString(s, "")
}

// Clean reads r line by line and returns the cleaned text. Lines may be of
// any length. Any error reading from r is returned.
func (c *Cleaner) Clean(r io.Reader) (string, error) {
	br := bufio.NewReader(r)

	var sb strings.Builder
	first := true
	for {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		if line == "" && err != nil {
			break
		}

		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")
		if c.keepNewlines && !first {
			sb.WriteByte('\n')
		}
		first = false
		sb.WriteString(c.CleanString(line))

		if err != nil {
			break
		}
	}
	return sb.String(), nil
}
