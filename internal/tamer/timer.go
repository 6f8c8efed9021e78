// File: internal/tamer/timer.go
// Author: momentics <momentics@gmail.com>
//
// The timer heap orders armed timers by expiry so the driver can cheaply
// find the next wakeup and expire everything due in a turn. Grounded on
// tame_driver.cc's timer_reheapify_from, but realized with container/heap
// over a slice of pointers rather than a hand-rolled slab allocator: Go
// pointers into heap-allocated structs stay stable across slice growth,
// so the original's "never move a live timer's address" constraint is
// satisfied without a custom allocator.
package tamer

import "container/heap"

// timer is one armed deadline. index is maintained by container/heap and
// lets the driver cancel a timer in O(log n) without a linear scan.
type timer struct {
	when  int64 // wall-clock Unix nanoseconds (time.Time.UnixNano)
	e     *SimpleEvent
	index int
}

// timerHeap is a min-heap of *timer ordered by when.
type timerHeap []*timer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool { return h[i].when < h[j].when }

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*timer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}

// peek returns the earliest timer without removing it, or nil if empty.
func (h timerHeap) peek() *timer {
	if len(h) == 0 {
		return nil
	}
	return h[0]
}

// removeTimer drops t from the heap in O(log n). A timer that is no
// longer a member (index -1 after Pop) is left alone.
func removeTimer(h *timerHeap, t *timer) {
	if t.index < 0 || t.index >= len(*h) {
		return
	}
	heap.Remove(h, t.index)
}
