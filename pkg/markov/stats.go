package markov

// Transition is a read-only view of one outgoing edge of a window.
type Transition struct {
	Window      string
	Count       int
	Probability float64
}

// Stats holds aggregated statistics for a Model.
type Stats struct {
	Order       int // The number of runes in a window.
	Windows     int // The number of distinct windows seen in training.
	Transitions int // The number of distinct window->window links.
	TotalCount  int // The sum of all link counts; the number of trained transitions.
	DeadEnds    int // The number of windows with no outgoing link.
}

// Count returns how many times window from was followed by window to in
// training. Unknown windows count as zero.
func (m *Model) Count(from, to string) int {
	c, ok := m.cell(from, to)
	if !ok {
		return 0
	}
	return c.Count
}

// Probability returns P(to | from) as of the last normalization, or 0 if the
// pair was never observed.
func (m *Model) Probability(from, to string) float64 {
	c, ok := m.cell(from, to)
	if !ok {
		return 0
	}
	return c.Probability
}

func (m *Model) cell(from, to string) (Cell, bool) {
	source, ok := m.index.Lookup(from)
	if !ok {
		return Cell{}, false
	}
	target, ok := m.index.Lookup(to)
	if !ok {
		return Cell{}, false
	}
	return m.store.Get(source, target)
}

// Transitions returns the outgoing edges of window from in the order the
// generator walks them. It returns nil for an unknown window or one without
// outgoing edges. Looking up a window never adds it to the model.
func (m *Model) Transitions(from string) []Transition {
	source, ok := m.index.Lookup(from)
	if !ok {
		return nil
	}
	row := m.store.Row(source)
	if len(row) == 0 {
		return nil
	}
	out := make([]Transition, len(row))
	for i, e := range row {
		out[i] = Transition{
			Window:      m.window(e.Target),
			Count:       e.Count,
			Probability: e.Probability,
		}
	}
	return out
}

// Stats returns a snapshot of the model's size.
func (m *Model) Stats() Stats {
	s := Stats{
		Order:       m.order,
		Windows:     m.index.Len(),
		Transitions: m.store.Len(),
	}
	for id := 0; id < m.index.Len(); id++ {
		if m.store.RowLen(id) == 0 {
			s.DeadEnds++
			continue
		}
		s.TotalCount += m.store.RowTotal(id)
	}
	return s
}
