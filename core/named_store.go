package core

import (
	"sort"
	"sync"
)

// =============================================================================
// namedTaskStore: Keyed task storage with sorted-key iteration
// =============================================================================

// namedTaskStore holds named tasks keyed by their unique name. Iteration
// order for execution is the natural (lexicographic) key order.
type namedTaskStore struct {
	mu    sync.Mutex
	tasks map[string]*Task
}

func newNamedTaskStore() *namedTaskStore {
	return &namedTaskStore{
		tasks: make(map[string]*Task),
	}
}

// Put inserts or overwrites the task under name. When a prior task existed,
// it is returned so the caller can report the replacement; it has been
// discarded unexecuted.
func (s *namedTaskStore) Put(name string, t *Task) (replaced *Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	replaced = s.tasks[name]
	s.tasks[name] = t
	return replaced
}

func (s *namedTaskStore) Get(name string) (*Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[name]
	return t, ok
}

// namedEntry is one (name, task) pair snapshotted for a batch.
type namedEntry struct {
	name string
	task *Task
}

// SortedEntries returns the current (name, task) pairs in execution order.
// RunAll snapshots these at entry so the batch holds exact task pointers,
// not just names.
func (s *namedTaskStore) SortedEntries() []namedEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]namedEntry, 0, len(s.tasks))
	for name, t := range s.tasks {
		entries = append(entries, namedEntry{name: name, task: t})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].name < entries[j].name
	})
	return entries
}

// RemoveMatching removes the entry under name only while it still holds t.
// A concurrent or re-entrant replacement keeps the newer task.
func (s *namedTaskStore) RemoveMatching(name string, t *Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tasks[name] == t {
		delete(s.tasks, name)
	}
}

func (s *namedTaskStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Clear removes all named tasks and releases their references.
func (s *namedTaskStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = make(map[string]*Task)
}
