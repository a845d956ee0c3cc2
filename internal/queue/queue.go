// Package queue is the scheduler's min-heap priority queue: ship symbols
// keyed by ISO-8601 UTC-millisecond "ready-at" strings with FIFO tie-break.
// String comparison on this timestamp format is order-preserving, so the
// heap never needs to parse a priority to order items against each other.
package queue

import "container/heap"

// Item is one entry in the queue: a ship symbol ready no earlier than
// Priority, with Sequence breaking ties in push order.
type Item struct {
	ShipSymbol string
	Priority   string
	Sequence   int64
	index      int
}

// ReadyQueue is a min-heap of Items, ordered by (Priority, Sequence). It
// holds ship symbols and never duplicates: Push replaces the symbol's
// priority if it is already present.
type ReadyQueue struct {
	items    innerHeap
	position map[string]*Item // ship symbol -> its live Item, for dedup
	seq      int64            // single monotonic counter for FIFO tie-break
}

func New() *ReadyQueue {
	q := &ReadyQueue{position: make(map[string]*Item)}
	heap.Init(&q.items)
	return q
}

// Push inserts shipSymbol at priority, or repositions it if already queued.
// Returns the Sequence assigned (useful for tests asserting FIFO order).
func (q *ReadyQueue) Push(shipSymbol, priority string) int64 {
	if item, ok := q.position[shipSymbol]; ok {
		item.Priority = priority
		q.seq++
		item.Sequence = q.seq
		heap.Fix(&q.items, item.index)
		return item.Sequence
	}
	q.seq++
	item := &Item{ShipSymbol: shipSymbol, Priority: priority, Sequence: q.seq}
	heap.Push(&q.items, item)
	q.position[shipSymbol] = item
	return item.Sequence
}

// PeekNextPriority returns the priority string of the earliest-ready item,
// or ("", false) if the queue is empty.
func (q *ReadyQueue) PeekNextPriority() (string, bool) {
	if len(q.items) == 0 {
		return "", false
	}
	return q.items[0].Priority, true
}

// ExtractMin pops and returns the earliest-ready ship symbol, or ("", false)
// if the queue is empty.
func (q *ReadyQueue) ExtractMin() (string, bool) {
	if len(q.items) == 0 {
		return "", false
	}
	item := heap.Pop(&q.items).(*Item)
	delete(q.position, item.ShipSymbol)
	return item.ShipSymbol, true
}

// Remove drops shipSymbol from the queue if present, reporting whether it
// was found.
func (q *ReadyQueue) Remove(shipSymbol string) bool {
	item, ok := q.position[shipSymbol]
	if !ok {
		return false
	}
	heap.Remove(&q.items, item.index)
	delete(q.position, shipSymbol)
	return true
}

func (q *ReadyQueue) Size() int { return len(q.items) }

func (q *ReadyQueue) Contains(shipSymbol string) bool {
	_, ok := q.position[shipSymbol]
	return ok
}

// innerHeap implements container/heap.Interface over *Item, ordered by
// (Priority, Sequence) using a single monotonic sequence counter shared
// across all pushes.
type innerHeap []*Item

func (h innerHeap) Len() int { return len(h) }

func (h innerHeap) Less(i, j int) bool {
	if h[i].Priority != h[j].Priority {
		return h[i].Priority < h[j].Priority
	}
	return h[i].Sequence < h[j].Sequence
}

func (h innerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *innerHeap) Push(x interface{}) {
	item := x.(*Item)
	item.index = len(*h)
	*h = append(*h, item)
}

func (h *innerHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*h = old[:n-1]
	return item
}
