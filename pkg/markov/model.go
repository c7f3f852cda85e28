package markov

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
)

// Model is a character-level Markov chain of a fixed order. The zero value
// is not usable; create models with New.
//
// A Model is not safe for concurrent use. Callers that train or generate in
// parallel should use one Model per goroutine.
type Model struct {
	order         int
	index         *WindowIndex
	store         *TransitionStore
	rng           Source
	clampRounding bool
	logger        *slog.Logger
}

// Option configures a Model. Options are passed to New.
type Option func(*Model)

// WithSource makes the model draw all randomness from src. The source must
// not be shared with another model that is used concurrently.
func WithSource(src Source) Option {
	return func(m *Model) {
		if src != nil {
			m.rng = src
		}
	}
}

// WithSeed gives the model its own PCG source seeded with seed, so that
// generation is reproducible.
func WithSeed(seed uint64) Option {
	return func(m *Model) { m.rng = newSource(seed, seed) }
}

// WithRoundingClamp controls what happens when the sampled target lies above
// the cumulative probability of a row because of floating-point rounding. By
// default generation stops early at that point. When enabled, the last cell of
// the row is chosen instead.
func WithRoundingClamp(clamp bool) Option {
	return func(m *Model) { m.clampRounding = clamp }
}

// WithLogger sets the logger used for training and generation events.
// A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// New creates an untrained model of the given order. The order is the number
// of runes in a window and must be positive.
func New(order int, opts ...Option) (*Model, error) {
	if order <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidOrder, order)
	}
	m := &Model{
		order:  order,
		index:  NewWindowIndex(),
		store:  NewTransitionStore(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.rng == nil {
		m.rng = newSource(rand.Uint64(), rand.Uint64())
	}
	return m, nil
}

// SetLogger sets the logger for the Model. By default, all logs are discarded.
func (m *Model) SetLogger(logger *slog.Logger) {
	if logger != nil {
		m.logger = logger
	}
}

// Order returns the number of runes in a window.
func (m *Model) Order() int {
	return m.order
}

// Trained reports whether the model holds at least one window, i.e. whether
// Fit has succeeded at least once.
func (m *Model) Trained() bool {
	return m.index.Len() > 0
}

// window returns the window for an id the model itself assigned. A miss means
// the index and the store disagree, which is a bug.
func (m *Model) window(id int) string {
	w, err := m.index.Window(id)
	if err != nil {
		panic(fmt.Sprintf("markov: store references window outside the index: %v", err))
	}
	return w
}
