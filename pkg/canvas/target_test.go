package canvas_test

import (
	"errors"
	"sync"
	"testing"

	"periscope/pkg/canvas"
)

func TestLocalTargetAddAndGet(t *testing.T) {
	sink := canvas.NewLocalTarget()

	if err := sink.AddVariable([]string{"x"}, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	obj, ok := sink.Get("x")
	if !ok || obj != 1 {
		t.Errorf("expected 1 under x, got %v ok=%v", obj, ok)
	}

	if err := sink.AddVariable([]string{"x"}, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	obj, _ = sink.Get("x")
	if obj != 2 {
		t.Errorf("expected re-registration to replace, got %v", obj)
	}
	if sink.Len() != 1 {
		t.Errorf("expected a single path, got %d", sink.Len())
	}
}

func TestLocalTargetNestedPath(t *testing.T) {
	sink := canvas.NewLocalTarget()

	if err := sink.AddVariable([]string{"session", "data"}, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := sink.Get("session", "data"); !ok {
		t.Error("expected the nested path to round-trip")
	}
	if _, ok := sink.Get("session"); ok {
		t.Error("expected the path prefix alone to miss")
	}
}

func TestLocalTargetInvalidPath(t *testing.T) {
	sink := canvas.NewLocalTarget()

	if err := sink.AddVariable(nil, 1); !errors.Is(err, canvas.ErrEmptyPath) {
		t.Errorf("expected ErrEmptyPath, got %v", err)
	}
	if err := sink.AddVariable([]string{""}, 1); err == nil {
		t.Error("expected an error for an empty path element")
	}
	if sink.Len() != 0 {
		t.Error("expected invalid paths to register nothing")
	}
}

func TestLocalTargetPathsSorted(t *testing.T) {
	sink := canvas.NewLocalTarget()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := sink.AddVariable([]string{name}, name); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	paths := sink.Paths()
	expected := []string{"alpha", "mid", "zeta"}
	if len(paths) != len(expected) {
		t.Fatalf("expected %d paths, got %d", len(expected), len(paths))
	}
	for i, p := range expected {
		if paths[i] != p {
			t.Errorf("path %d: expected %s, got %s", i, p, paths[i])
		}
	}
}

func TestLocalTargetConcurrentAdds(t *testing.T) {
	sink := canvas.NewLocalTarget()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if err := sink.AddVariable([]string{"shared"}, n); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if sink.Len() != 1 {
		t.Errorf("expected one path, got %d", sink.Len())
	}
}
