package markov

// Cell holds the observed count of a single window-to-window transition and
// the probability derived from it during normalization.
type Cell struct {
	Count       int
	Probability float64
}

// Entry is a stored cell together with the id of its target window, as
// returned by TransitionStore.Row.
type Entry struct {
	Target int
	Cell
}

// cellKey identifies one (source, target) pair in the store.
type cellKey struct {
	source int
	target int
}

// TransitionStore is a sparse transition matrix. Only pairs that have been
// written with Put take up memory, so its size follows the number of observed
// transitions rather than the square of the number of windows.
//
// Rows are returned in the order their cells were first written. Overwriting
// an existing cell keeps its position.
type TransitionStore struct {
	cells map[cellKey]Cell
	rows  map[int][]int // source -> targets, in first-write order
}

// NewTransitionStore returns an empty store.
func NewTransitionStore() *TransitionStore {
	return &TransitionStore{
		cells: make(map[cellKey]Cell),
		rows:  make(map[int][]int),
	}
}

// Get returns the cell stored for (source, target). The boolean is false if
// the pair was never written, in which case the zero Cell is returned.
func (s *TransitionStore) Get(source, target int) (Cell, bool) {
	c, ok := s.cells[cellKey{source: source, target: target}]
	return c, ok
}

// Put inserts or overwrites the cell for (source, target).
func (s *TransitionStore) Put(source, target int, c Cell) {
	key := cellKey{source: source, target: target}
	if _, ok := s.cells[key]; !ok {
		s.rows[source] = append(s.rows[source], target)
	}
	s.cells[key] = c
}

// Row returns every stored cell whose source is the given id, in row order.
// It returns nil for a row with no stored cells.
func (s *TransitionStore) Row(source int) []Entry {
	targets := s.rows[source]
	if len(targets) == 0 {
		return nil
	}
	entries := make([]Entry, len(targets))
	for i, target := range targets {
		entries[i] = Entry{Target: target, Cell: s.cells[cellKey{source: source, target: target}]}
	}
	return entries
}

// RowTotal returns the sum of counts over the stored cells of a row, or 0 if
// the row is empty.
func (s *TransitionStore) RowTotal(source int) int {
	total := 0
	for _, target := range s.rows[source] {
		total += s.cells[cellKey{source: source, target: target}].Count
	}
	return total
}

// RowLen returns the number of stored cells in a row.
func (s *TransitionStore) RowLen(source int) int {
	return len(s.rows[source])
}

// Len returns the number of stored cells across all rows.
func (s *TransitionStore) Len() int {
	return len(s.cells)
}

// normalizeRow recomputes the probabilities of a row from its counts. A row
// whose total is zero gets all-zero probabilities.
func (s *TransitionStore) normalizeRow(source int) {
	targets := s.rows[source]
	if len(targets) == 0 {
		return
	}
	total := s.RowTotal(source)
	for _, target := range targets {
		key := cellKey{source: source, target: target}
		c := s.cells[key]
		if total > 0 {
			c.Probability = float64(c.Count) / float64(total)
		} else {
			c.Probability = 0
		}
		s.cells[key] = c
	}
}
