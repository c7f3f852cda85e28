package markov

import (
	"fmt"
	"log/slog"
)

// Fit trains the model on text, which is treated as a sequence of runes. For
// every offset i it counts one transition from the window starting at i to
// the window starting at i+order, then renormalizes every row from the
// accumulated counts.
//
// Counts accumulate across calls; probabilities are always recomputed from
// scratch. Fit returns ErrTooShort without touching the model if text holds
// fewer than 2*order runes.
func (m *Model) Fit(text string) error {
	symbols := []rune(text)
	k := m.order
	// 2*k can overflow for huge orders.
	if k > len(symbols)/2 || len(symbols)-k < k {
		return fmt.Errorf("%w: got %d, need at least 2*%d", ErrTooShort, len(symbols), k)
	}

	for i := 0; i <= len(symbols)-2*k; i++ {
		source := m.index.LookupOrInsert(string(symbols[i : i+k]))
		target := m.index.LookupOrInsert(string(symbols[i+k : i+2*k]))

		c, _ := m.store.Get(source, target)
		c.Count++
		m.store.Put(source, target, c)
	}

	m.normalize()

	m.logger.Info("Training completed",
		slog.Int("order", k),
		slog.Int("symbols", len(symbols)),
		slog.Int("windows", m.index.Len()),
		slog.Int("transitions", m.store.Len()),
	)
	return nil
}

// normalize recomputes probabilities for every row known to the index.
func (m *Model) normalize() {
	for id := 0; id < m.index.Len(); id++ {
		m.store.normalizeRow(id)
	}
}
