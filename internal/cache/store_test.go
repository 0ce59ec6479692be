package cache

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type fixture struct {
	Name    string
	Samples []float64
}

func TestGetOrCompute(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "table.gob")

	calls := 0
	compute := func() (fixture, error) {
		calls++
		return fixture{Name: "recordings", Samples: []float64{0.5, -0.25}}, nil
	}

	// First call computes and persists.
	first, err := GetOrCompute(path, compute)
	if err != nil {
		t.Fatalf("GetOrCompute failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("compute invoked %d times, want 1", calls)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("cache file not persisted: %v", err)
	}

	// Second call loads from disk without recomputing.
	second, err := GetOrCompute(path, compute)
	if err != nil {
		t.Fatalf("second GetOrCompute failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("compute invoked %d times after cache hit, want 1", calls)
	}
	if second.Name != first.Name || len(second.Samples) != len(first.Samples) {
		t.Errorf("cached value = %+v, want %+v", second, first)
	}
	for i := range first.Samples {
		if second.Samples[i] != first.Samples[i] {
			t.Errorf("Samples[%d] = %v, want %v", i, second.Samples[i], first.Samples[i])
		}
	}
}

func TestGetOrCompute_ComputeError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.gob")

	wantErr := errors.New("decode blew up")
	_, err := GetOrCompute(path, func() (fixture, error) {
		return fixture{}, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("error = %v, want %v", err, wantErr)
	}

	// A failed computation must not leave a cache file behind.
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("cache file exists after failed compute")
	}
}

func TestEvict(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.gob")

	calls := 0
	compute := func() (fixture, error) {
		calls++
		return fixture{Name: "patients"}, nil
	}

	if _, err := GetOrCompute(path, compute); err != nil {
		t.Fatalf("GetOrCompute failed: %v", err)
	}
	if err := Evict(path); err != nil {
		t.Fatalf("Evict failed: %v", err)
	}

	if _, err := GetOrCompute(path, compute); err != nil {
		t.Fatalf("GetOrCompute after Evict failed: %v", err)
	}
	if calls != 2 {
		t.Errorf("compute invoked %d times, want 2 (recompute after eviction)", calls)
	}
}

func TestEvict_NoEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.gob")

	if err := Evict(path); !errors.Is(err, ErrNoEntry) {
		t.Errorf("Evict on missing file = %v, want ErrNoEntry", err)
	}
}
