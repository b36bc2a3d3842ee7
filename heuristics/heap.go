package heuristics

import "github.com/katalvlaran/setcover/intidx"

/*
adjustableHeap — K-ary Priority Heap With O(log n) Update/Remove-By-Payload

Description:
  A plain array-backed k-ary heap (arity configurable: 16 for Greedy's
  priority scan, 2 for GuidedLocalSearch's two smaller heaps) extended
  with an external payload->slot index so a caller can raise or lower an
  already-queued subset's priority, or drop it entirely, without a linear
  scan. `container/heap` has no such hook (it only reorders via
  sort.Interface), so this is a small hand-rolled replacement rather than
  an adapter over it.

Algorithm outline: standard sift-up/sift-down, parametrized by arity;
  every swap updates both heap slots' entries in the index map so the
  map always reflects the current array position of each live payload.

Memory: O(n) for the heap array plus the index map.
*/
type heapEntry struct {
	payload  intidx.SubsetIndex
	priority float64
}

type adjustableHeap struct {
	arity    int
	higher   func(a, b float64) bool // true if a belongs closer to the root than b
	entries  []heapEntry
	indexOf  map[intidx.SubsetIndex]int
}

// newMaxHeap returns a k-ary heap that pops the largest priority first.
func newMaxHeap(arity int) *adjustableHeap {
	return &adjustableHeap{
		arity:   arity,
		higher:  func(a, b float64) bool { return a > b },
		indexOf: make(map[intidx.SubsetIndex]int),
	}
}

// newMinHeap returns a k-ary heap that pops the smallest priority first.
func newMinHeap(arity int) *adjustableHeap {
	return &adjustableHeap{
		arity:   arity,
		higher:  func(a, b float64) bool { return a < b },
		indexOf: make(map[intidx.SubsetIndex]int),
	}
}

func (h *adjustableHeap) Len() int { return len(h.entries) }

func (h *adjustableHeap) Contains(payload intidx.SubsetIndex) bool {
	_, ok := h.indexOf[payload]
	return ok
}

// Push inserts payload with the given priority. Payloads already present
// are not deduplicated by the caller's responsibility; use UpdatePriority
// instead if payload may already be queued.
func (h *adjustableHeap) Push(payload intidx.SubsetIndex, priority float64) {
	h.entries = append(h.entries, heapEntry{payload: payload, priority: priority})
	i := len(h.entries) - 1
	h.indexOf[payload] = i
	h.siftUp(i)
}

// Pop removes and returns the root entry.
func (h *adjustableHeap) Pop() (intidx.SubsetIndex, float64, bool) {
	if len(h.entries) == 0 {
		return 0, 0, false
	}
	root := h.entries[0]
	last := len(h.entries) - 1
	h.swap(0, last)
	h.entries = h.entries[:last]
	delete(h.indexOf, root.payload)
	if len(h.entries) > 0 {
		h.siftDown(0)
	}
	return root.payload, root.priority, true
}

// Peek returns the root entry without removing it.
func (h *adjustableHeap) Peek() (intidx.SubsetIndex, float64, bool) {
	if len(h.entries) == 0 {
		return 0, 0, false
	}
	return h.entries[0].payload, h.entries[0].priority, true
}

// UpdatePriority changes payload's priority in place, reheapifying from
// its current slot. Returns false if payload is not queued.
func (h *adjustableHeap) UpdatePriority(payload intidx.SubsetIndex, priority float64) bool {
	i, ok := h.indexOf[payload]
	if !ok {
		return false
	}
	old := h.entries[i].priority
	h.entries[i].priority = priority
	if h.higher(priority, old) {
		h.siftUp(i)
	} else {
		h.siftDown(i)
	}
	return true
}

// Remove drops payload from the heap entirely, wherever it sits. Returns
// false if payload is not queued.
func (h *adjustableHeap) Remove(payload intidx.SubsetIndex) bool {
	i, ok := h.indexOf[payload]
	if !ok {
		return false
	}
	last := len(h.entries) - 1
	h.swap(i, last)
	h.entries = h.entries[:last]
	delete(h.indexOf, payload)
	if i < len(h.entries) {
		h.siftDown(i)
		h.siftUp(i)
	}
	return true
}

func (h *adjustableHeap) swap(i, j int) {
	h.entries[i], h.entries[j] = h.entries[j], h.entries[i]
	h.indexOf[h.entries[i].payload] = i
	h.indexOf[h.entries[j].payload] = j
}

func (h *adjustableHeap) parent(i int) int { return (i - 1) / h.arity }

func (h *adjustableHeap) firstChild(i int) int { return h.arity*i + 1 }

func (h *adjustableHeap) siftUp(i int) {
	for i > 0 {
		p := h.parent(i)
		if !h.higher(h.entries[i].priority, h.entries[p].priority) {
			return
		}
		h.swap(i, p)
		i = p
	}
}

func (h *adjustableHeap) siftDown(i int) {
	n := len(h.entries)
	for {
		best := i
		first := h.firstChild(i)
		for c := first; c < first+h.arity && c < n; c++ {
			if h.higher(h.entries[c].priority, h.entries[best].priority) {
				best = c
			}
		}
		if best == i {
			return
		}
		h.swap(i, best)
		i = best
	}
}
