package markov

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	testCases := []struct {
		name    string
		order   int
		wantErr bool
	}{
		{name: "Order one", order: 1},
		{name: "Order five", order: 5},
		{name: "Zero order", order: 0, wantErr: true},
		{name: "Negative order", order: -2, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := New(tc.order)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidOrder) {
					t.Errorf("expected ErrInvalidOrder, got %v", err)
				}
				if m != nil {
					t.Error("expected nil model on error")
				}
				return
			}
			if err != nil {
				t.Fatalf("got unexpected error: %v", err)
			}
			if m.Order() != tc.order {
				t.Errorf("Order() = %d, want %d", m.Order(), tc.order)
			}
			if m.Trained() {
				t.Error("new model must be untrained")
			}
		})
	}
}

func TestWithSourceIgnoresNil(t *testing.T) {
	m := newTestModel(t, 1, WithSource(nil))
	if m.rng == nil {
		t.Fatal("expected a default source when WithSource(nil) is given")
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	src := &scriptedSource{ints: []int{0}, floats: []float64{0.5}}
	m := trainedModel(t, 1, "ab", WithSource(src), WithLogger(logger))
	if !strings.Contains(buf.String(), "Training completed") {
		t.Errorf("expected training log line, got %q", buf.String())
	}

	buf.Reset()
	if _, err := m.Generate(10); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.Contains(buf.String(), "dead-end") {
		t.Errorf("expected dead-end log line, got %q", buf.String())
	}

	// SetLogger(nil) keeps the current logger.
	m.SetLogger(nil)
	if m.logger != logger {
		t.Error("SetLogger(nil) replaced the logger")
	}
}

func TestWindowPanicsOnCorruptState(t *testing.T) {
	m := newTestModel(t, 1)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for a window id outside the index")
		}
	}()
	_ = m.window(3)
}
