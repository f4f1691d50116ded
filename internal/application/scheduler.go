package application

import (
	"container/heap"
	"time"

	"github.com/bnema/audiolib/internal/ports"
	"github.com/google/uuid"
)

// TaskID identifies a playback request handed out by the Coordinator.
type TaskID string

func newTaskID() TaskID {
	return TaskID(uuid.NewString())
}

type task struct {
	id     TaskID
	due    time.Time
	seq    uint64
	action func()
	index  int
}

// taskHeap is a min-heap on due time with FIFO tie-breaking on seq.
type taskHeap []*task

func (h taskHeap) Len() int {
	return len(h)
}

func (h taskHeap) Less(i, j int) bool {
	if !h[i].due.Equal(h[j].due) {
		return h[i].due.Before(h[j].due)
	}
	return h[i].seq < h[j].seq
}

func (h taskHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *taskHeap) Push(x any) {
	t := x.(*task)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}

type watch struct {
	src  ports.Source
	done func()
}

// Scheduler is the per-tick task queue behind the Coordinator: delayed starts
// keyed by due time and completion watches polled every tick. It is not safe
// for concurrent use; the Coordinator serialises access.
type Scheduler struct {
	tasks   taskHeap
	byID    map[TaskID]*task
	seq     uint64
	watches []watch
}

func NewScheduler() *Scheduler {
	return &Scheduler{byID: map[TaskID]*task{}}
}

func (s *Scheduler) Schedule(due time.Time, action func()) TaskID {
	return s.scheduleWithID(newTaskID(), due, action)
}

func (s *Scheduler) scheduleWithID(id TaskID, due time.Time, action func()) TaskID {
	s.seq++
	t := &task{id: id, due: due, seq: s.seq, action: action}
	heap.Push(&s.tasks, t)
	s.byID[id] = t
	return id
}

// Cancel removes a task that has not run yet.
func (s *Scheduler) Cancel(id TaskID) bool {
	t, ok := s.byID[id]
	if !ok {
		return false
	}

	heap.Remove(&s.tasks, t.index)
	delete(s.byID, id)
	return true
}

// PopDue removes and returns the actions due at now, earliest first.
func (s *Scheduler) PopDue(now time.Time) []func() {
	var actions []func()
	for s.tasks.Len() > 0 && !s.tasks[0].due.After(now) {
		t := heap.Pop(&s.tasks).(*task)
		delete(s.byID, t.id)
		actions = append(actions, t.action)
	}
	return actions
}

// Watch calls done on the first poll that finds src stopped or invalidated.
func (s *Scheduler) Watch(src ports.Source, done func()) {
	s.watches = append(s.watches, watch{src: src, done: done})
}

// PollWatches fires and removes every watch whose source is no longer playing.
// It returns how many fired.
func (s *Scheduler) PollWatches() int {
	fired := 0
	for i := len(s.watches) - 1; i >= 0; i-- {
		w := s.watches[i]
		if w.src.Valid() && w.src.IsPlaying() {
			continue
		}

		s.watches = append(s.watches[:i], s.watches[i+1:]...)
		w.done()
		fired++
	}
	return fired
}

// Pending reports the number of tasks not yet due.
func (s *Scheduler) Pending() int {
	return s.tasks.Len()
}

func (s *Scheduler) Watching() int {
	return len(s.watches)
}
