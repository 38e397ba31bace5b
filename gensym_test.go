package macro

import (
	"strings"
	"sync"
	"testing"
)

func TestGensymFormat(t *testing.T) {
	g := &Gensym{}
	name := g.Next("d__")
	if name != "d__1" {
		t.Errorf("expected first allocation to be d__1, got %s", name)
	}
	if next := g.Next("d__"); next != "d__2" {
		t.Errorf("expected second allocation to be d__2, got %s", next)
	}
}

func TestGensymNeverReuses(t *testing.T) {
	g := &Gensym{}
	const goroutines = 8
	const perGoroutine = 1000
	var wg sync.WaitGroup
	results := make([][]string, goroutines)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			names := make([]string, perGoroutine)
			for j := 0; j < perGoroutine; j++ {
				names[j] = g.Next("g__")
			}
			results[slot] = names
		}(i)
	}
	wg.Wait()
	seen := make(map[string]bool, goroutines*perGoroutine)
	for _, names := range results {
		for _, name := range names {
			if seen[name] {
				t.Fatalf("allocator handed out %s twice", name)
			}
			if !strings.HasPrefix(name, "g__") {
				t.Fatalf("allocated name %s does not carry its prefix", name)
			}
			seen[name] = true
		}
	}
	if len(seen) != goroutines*perGoroutine {
		t.Errorf("expected %d distinct names, got %d", goroutines*perGoroutine, len(seen))
	}
}
