package markov

import (
	"fmt"
	"log/slog"
)

// maxPrealloc bounds the up-front output buffer. Longer outputs grow on
// demand, so a walk that dead-ends early never reserves the full length.
const maxPrealloc = 1 << 16

// Generate walks the chain and returns up to length runes of text.
//
// The walk starts at a window chosen uniformly at random among all known
// windows. Each step appends the current window to the output and moves to
// a successor sampled from the current window's row. The result is truncated
// to exactly length runes.
//
// If the walk reaches a window with no usable transitions, generation stops
// and the shorter text is returned with a nil error. Callers that need an
// exact length can retry with another seed.
func (m *Model) Generate(length int) (string, error) {
	if m.index.Len() == 0 {
		return "", ErrEmptyModel
	}
	if length < 0 {
		return "", fmt.Errorf("%w: got %d", ErrInvalidLength, length)
	}

	out := make([]rune, 0, min(length, maxPrealloc)+m.order)
	current := m.window(m.rng.IntN(m.index.Len()))

	for len(out) < length {
		out = append(out, []rune(current)...)

		id := m.index.LookupOrInsert(current)
		next, ok := m.step(id)
		if !ok {
			if len(out) < length {
				m.logger.Debug("Generation terminated due to dead-end",
					slog.String("window", current),
					slog.Int("generated_length", len(out)),
					slog.Int("requested_length", length),
				)
			}
			break
		}
		current = m.window(next)
	}

	if len(out) > length {
		out = out[:length]
	}
	return string(out), nil
}

// step samples the successor of the window with the given id. It returns
// false when the row is a dead end: no stored cells, a zero total, or a
// cumulative probability that never reaches the sampled target.
func (m *Model) step(id int) (int, bool) {
	target := m.rng.Float64()

	row := m.store.Row(id)
	if len(row) == 0 || m.store.RowTotal(id) == 0 {
		return 0, false
	}

	var cumulative float64
	for _, e := range row {
		cumulative += e.Probability
		if cumulative >= target {
			return e.Target, true
		}
	}

	if m.clampRounding {
		return row[len(row)-1].Target, true
	}
	return 0, false
}
