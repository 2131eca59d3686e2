package core

import (
	"container/heap"
	"sync"
)

const (
	defaultQueueCap     = 16
	compactMinCap       = 64 // Don't compact if capacity is less than this
	compactShrinkFactor = 4  // Trigger compaction when len < cap/4
)

// taskQueue is the ordered anonymous-task collection behind a Scheduler.
// The FIFO implementation preserves submission order; the priority
// implementation orders by priority descending with submission order as
// tie-break.
type taskQueue interface {
	Push(t *Task)
	Pop() (*Task, bool)
	// PopAll removes and returns every queued task in execution order.
	// RunAll uses this to fix the batch bounds at entry.
	PopAll() []*Task
	Len() int
	IsEmpty() bool
	Clear()
}

// =============================================================================
// fifoTaskQueue: Slice-backed FIFO queue
// =============================================================================

type fifoTaskQueue struct {
	mu    sync.Mutex
	tasks []*Task
}

func newFIFOTaskQueue() *fifoTaskQueue {
	return &fifoTaskQueue{
		tasks: make([]*Task, 0, defaultQueueCap),
	}
}

func (q *fifoTaskQueue) Push(t *Task) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, t)
}

func (q *fifoTaskQueue) Pop() (*Task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.tasks) == 0 {
		return nil, false
	}

	t := q.tasks[0]
	// Zero out the element in the underlying array to prevent memory leak
	q.tasks[0] = nil
	q.tasks = q.tasks[1:]
	q.maybeCompactLocked()

	return t, true
}

func (q *fifoTaskQueue) PopAll() []*Task {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.tasks) == 0 {
		return nil
	}

	batch := q.tasks
	q.tasks = make([]*Task, 0, defaultQueueCap)
	return batch
}

func (q *fifoTaskQueue) maybeCompactLocked() {
	n := len(q.tasks)
	c := cap(q.tasks)

	if c < compactMinCap {
		return
	}
	if n == 0 {
		q.tasks = make([]*Task, 0, defaultQueueCap)
		return
	}
	if n*compactShrinkFactor >= c {
		return
	}

	newCap := max(max(c/2, defaultQueueCap), n)

	newSlice := make([]*Task, n, newCap)
	copy(newSlice, q.tasks)
	q.tasks = newSlice
}

func (q *fifoTaskQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

func (q *fifoTaskQueue) IsEmpty() bool {
	return q.Len() == 0
}

func (q *fifoTaskQueue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	// Create a new slice to release all task references
	q.tasks = make([]*Task, 0, defaultQueueCap)
}

// =============================================================================
// priorityTaskQueue: Heap based queue with Stability (FIFO for same priority)
// =============================================================================

type priorityItem struct {
	task     *Task
	sequence uint64 // For stability
	index    int    // For heap
}

// priorityHeap implements heap.Interface
type priorityHeap []*priorityItem

func (h priorityHeap) Len() int { return len(h) }

// Less implements priority logic: High priority first, then Small sequence first (FIFO)
func (h priorityHeap) Less(i, j int) bool {
	if h[i].task.Priority() > h[j].task.Priority() {
		return true
	}
	if h[i].task.Priority() < h[j].task.Priority() {
		return false
	}
	// Same priority: earlier sequence first (FIFO)
	return h[i].sequence < h[j].sequence
}

func (h priorityHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *priorityHeap) Push(x interface{}) {
	n := len(*h)
	item := x.(*priorityItem)
	item.index = n
	*h = append(*h, item)
}

func (h *priorityHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil // Avoid memory leak
	item.index = -1
	*h = old[0 : n-1]
	return item
}

type priorityTaskQueue struct {
	mu           sync.Mutex
	pq           priorityHeap
	nextSequence uint64
}

func newPriorityTaskQueue() *priorityTaskQueue {
	return &priorityTaskQueue{
		pq: make(priorityHeap, 0, defaultQueueCap),
	}
}

func (q *priorityTaskQueue) Push(t *Task) {
	q.mu.Lock()
	defer q.mu.Unlock()

	item := &priorityItem{
		task:     t,
		sequence: q.nextSequence,
	}
	q.nextSequence++

	heap.Push(&q.pq, item)
}

func (q *priorityTaskQueue) Pop() (*Task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.pq) == 0 {
		return nil, false
	}

	item := heap.Pop(&q.pq).(*priorityItem)
	return item.task, true
}

func (q *priorityTaskQueue) PopAll() []*Task {
	q.mu.Lock()
	defer q.mu.Unlock()

	count := len(q.pq)
	if count == 0 {
		return nil
	}

	batch := make([]*Task, count)
	for i := 0; i < count; i++ {
		item := heap.Pop(&q.pq).(*priorityItem)
		batch[i] = item.task
	}

	return batch
}

func (q *priorityTaskQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pq)
}

func (q *priorityTaskQueue) IsEmpty() bool {
	return q.Len() == 0
}

func (q *priorityTaskQueue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	// Create a new heap to release all task references
	q.pq = make(priorityHeap, 0, defaultQueueCap)
	heap.Init(&q.pq)
	q.nextSequence = 0
}
