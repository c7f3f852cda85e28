package markov

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTransitionStorePutGet(t *testing.T) {
	s := NewTransitionStore()

	if _, ok := s.Get(0, 0); ok {
		t.Fatal("expected empty store to have no cell at (0, 0)")
	}

	s.Put(0, 0, Cell{Count: 55})
	if c, ok := s.Get(0, 0); !ok || c.Count != 55 {
		t.Errorf("Get(0, 0) = %+v, %v; want count 55", c, ok)
	}

	s.Put(0, 0, Cell{Count: 42, Probability: 1})
	if c, _ := s.Get(0, 0); c.Count != 42 || c.Probability != 1 {
		t.Errorf("Get(0, 0) after overwrite = %+v", c)
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 stored cell, got %d", s.Len())
	}
}

func TestTransitionStoreRowOrder(t *testing.T) {
	s := NewTransitionStore()
	s.Put(0, 0, Cell{Count: 0})
	s.Put(1, 0, Cell{Count: 1})
	s.Put(0, 1, Cell{Count: 0})
	s.Put(1, 1, Cell{Count: 1})
	s.Put(0, 2, Cell{Count: 2})

	want := []Entry{
		{Target: 0, Cell: Cell{Count: 0}},
		{Target: 1, Cell: Cell{Count: 0}},
		{Target: 2, Cell: Cell{Count: 2}},
	}
	if diff := cmp.Diff(want, s.Row(0)); diff != "" {
		t.Errorf("Row(0) mismatch (-want +got):\n%s", diff)
	}

	// Overwriting keeps the cell where it was.
	s.Put(0, 0, Cell{Count: 7})
	got := s.Row(0)
	if got[0].Target != 0 || got[0].Count != 7 {
		t.Errorf("expected overwritten cell to stay first, got %+v", got)
	}
	if diff := cmp.Diff(got, s.Row(0)); diff != "" {
		t.Errorf("Row(0) changed between reads:\n%s", diff)
	}
}

func TestTransitionStoreRowTotal(t *testing.T) {
	s := NewTransitionStore()
	if total := s.RowTotal(3); total != 0 {
		t.Errorf("RowTotal of empty row = %d, want 0", total)
	}
	if row := s.Row(3); row != nil {
		t.Errorf("Row of empty row = %v, want nil", row)
	}

	s.Put(3, 1, Cell{Count: 2})
	s.Put(3, 4, Cell{Count: 5})
	s.Put(4, 3, Cell{Count: 100})
	if total := s.RowTotal(3); total != 7 {
		t.Errorf("RowTotal(3) = %d, want 7", total)
	}
	if n := s.RowLen(3); n != 2 {
		t.Errorf("RowLen(3) = %d, want 2", n)
	}
}

func TestTransitionStoreNormalizeRow(t *testing.T) {
	s := NewTransitionStore()
	s.Put(0, 0, Cell{Count: 1})
	s.Put(0, 1, Cell{Count: 3})
	s.Put(1, 0, Cell{Count: 0, Probability: 0.5})

	s.normalizeRow(0)
	s.normalizeRow(1)
	s.normalizeRow(2) // no cells, must not materialize anything

	if c, _ := s.Get(0, 0); c.Probability != 0.25 {
		t.Errorf("P(0->0) = %v, want 0.25", c.Probability)
	}
	if c, _ := s.Get(0, 1); c.Probability != 0.75 {
		t.Errorf("P(0->1) = %v, want 0.75", c.Probability)
	}
	if c, _ := s.Get(1, 0); c.Probability != 0 {
		t.Errorf("zero-total row should normalize to 0, got %v", c.Probability)
	}
	if s.Len() != 3 {
		t.Errorf("expected 3 cells after normalization, got %d", s.Len())
	}
}
