package bridge

import "sync"

// handleTable maps opaque integers handed to native code back to Go values.
// Zero is never issued.
type handleTable[T any] struct {
	values map[uintptr]T
	next   uintptr
	mu     sync.Mutex
}

func (h *handleTable[T]) put(v T) uintptr {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.values == nil {
		h.values = make(map[uintptr]T)
	}
	for {
		h.next++
		if h.next == 0 {
			continue
		}
		if _, used := h.values[h.next]; !used {
			break
		}
	}
	h.values[h.next] = v
	return h.next
}

func (h *handleTable[T]) get(id uintptr) (T, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	v, ok := h.values[id]
	return v, ok
}

func (h *handleTable[T]) delete(id uintptr) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.values, id)
}

func (h *handleTable[T]) len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.values)
}
