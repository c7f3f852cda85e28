package markov

import (
	"go/build"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// scriptedSource replays fixed values so that tests can steer the walk.
// Each list wraps around when it runs out.
type scriptedSource struct {
	ints   []int
	floats []float64
	ii, fi int
}

func (s *scriptedSource) IntN(n int) int {
	v := 0
	if len(s.ints) > 0 {
		v = s.ints[s.ii%len(s.ints)]
		s.ii++
	}
	if v >= n {
		panic("scriptedSource: IntN value out of range")
	}
	return v
}

func (s *scriptedSource) Float64() float64 {
	v := 0.0
	if len(s.floats) > 0 {
		v = s.floats[s.fi%len(s.floats)]
		s.fi++
	}
	return v
}

// newTestModel creates a model and fails the test on error.
func newTestModel(t testing.TB, order int, opts ...Option) *Model {
	t.Helper()
	m, err := New(order, opts...)
	if err != nil {
		t.Fatalf("New(%d) error = %v", order, err)
	}
	return m
}

// trainedModel is a convenience helper that also fits the model on text.
func trainedModel(t testing.TB, order int, text string, opts ...Option) *Model {
	t.Helper()
	m := newTestModel(t, order, opts...)
	if err := m.Fit(text); err != nil {
		t.Fatalf("setup: Fit(%q) failed: %v", text, err)
	}
	return m
}

// checkRowSums verifies that every non-empty row sums to 1 within 1e-6.
func checkRowSums(t *testing.T, m *Model) {
	t.Helper()
	for id := 0; id < m.index.Len(); id++ {
		row := m.store.Row(id)
		if len(row) == 0 {
			continue
		}
		var sum float64
		for _, e := range row {
			sum += e.Probability
		}
		if math.Abs(sum-1) > 1e-6 {
			w, _ := m.index.Window(id)
			t.Errorf("row %q sums to %v, want 1", w, sum)
		}
	}
}

var (
	benchmarkCorpus string
	corpusOnce      sync.Once
)

// createBenchmarkCorpus reads Go source files to create a corpus for benchmarking.
func createBenchmarkCorpus() string {
	corpusOnce.Do(func() {
		var sb strings.Builder
		goRoot := build.Default.GOROOT
		filesToRead := []string{
			filepath.Join(goRoot, "src/net/http/server.go"),
			filepath.Join(goRoot, "src/go/parser/parser.go"),
			filepath.Join(goRoot, "src/encoding/json/encode.go"),
		}

		for _, file := range filesToRead {
			content, err := os.ReadFile(file)
			if err != nil {
				benchmarkCorpus = "this is a fallback corpus for benchmarking. it is not very long but will prevent a crash. "
				return
			}
			sb.Write(content)
			sb.WriteString("\n")
		}
		benchmarkCorpus = sb.String()
	})
	return benchmarkCorpus
}
