package bridge

import (
	"sync"
	"testing"
)

func TestHandleTable(t *testing.T) {
	var h handleTable[string]

	a := h.put("a")
	b := h.put("b")
	if a == 0 || b == 0 {
		t.Fatalf("issued zero handle: %d, %d", a, b)
	}
	if a == b {
		t.Fatalf("handles collide: %d", a)
	}

	if v, ok := h.get(a); !ok || v != "a" {
		t.Errorf("get(a) = %q, %v", v, ok)
	}
	h.delete(a)
	if _, ok := h.get(a); ok {
		t.Error("get after delete succeeded")
	}
	if _, ok := h.get(0); ok {
		t.Error("get(0) succeeded")
	}
	if h.len() != 1 {
		t.Errorf("len = %d, want 1", h.len())
	}
}

func TestHandleTableWrapSkipsLive(t *testing.T) {
	var h handleTable[int]
	h.next = ^uintptr(0) - 1

	first := h.put(1) // max
	second := h.put(2)
	if second == 0 {
		t.Fatal("issued zero after wrap")
	}
	if second != 1 {
		t.Errorf("after wrap got %d, want 1", second)
	}

	// 2 is live; the next issue must step over it after another wrap.
	h.next = ^uintptr(0)
	h.values[2] = 0
	third := h.put(3)
	if third == 0 || third == second || third == 2 || third == first {
		t.Errorf("issued live or zero handle %d", third)
	}
}

func TestHandleTableConcurrent(t *testing.T) {
	var h handleTable[int]
	var wg sync.WaitGroup
	ids := make([]uintptr, 128)

	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i] = h.put(i)
		}(i)
	}
	wg.Wait()

	seen := make(map[uintptr]bool, len(ids))
	for i, id := range ids {
		if seen[id] {
			t.Fatalf("duplicate handle %d", id)
		}
		seen[id] = true
		if v, _ := h.get(id); v != i {
			t.Errorf("get(%d) = %d, want %d", id, v, i)
		}
		h.delete(id)
	}
	if h.len() != 0 {
		t.Errorf("len = %d after deleting all", h.len())
	}
}
