package domain

import (
	"math/rand/v2"
	"sync"
)

// Rand is the random source used for clip selection. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

const noSelection = -1

// SelectionState holds the runtime clip rotation of every entry in a session,
// keyed by entry identity so authored entries stay immutable.
type SelectionState struct {
	mu   sync.Mutex
	rng  Rand
	last map[EntryRef]int
}

func NewSelectionState(rng Rand) *SelectionState {
	if rng == nil {
		rng = globalRand{}
	}

	return &SelectionState{rng: rng, last: map[EntryRef]int{}}
}

// Pick returns the next clip for entry. Random mode never repeats the previous
// index when at least two clips exist; sequential mode cycles from index 0.
func (s *SelectionState) Pick(ref EntryRef, entry Entry) (ClipID, bool) {
	n := len(entry.Clips)
	switch n {
	case 0:
		return "", false
	case 1:
		return entry.Clips[0], true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	last, ok := s.last[ref]
	if !ok {
		last = noSelection
	}

	var index int
	if entry.Mode == SelectionSequential {
		index = (last + 1) % n
	} else {
		index = s.rng.IntN(n)
		for index == last {
			index = s.rng.IntN(n)
		}
	}
	s.last[ref] = index

	return entry.Clips[index], true
}

// LastIndex reports the index most recently picked for ref, or -1.
func (s *SelectionState) LastIndex(ref EntryRef) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if last, ok := s.last[ref]; ok {
		return last
	}
	return noSelection
}

func (s *SelectionState) Reset() {
	s.mu.Lock()
	s.last = map[EntryRef]int{}
	s.mu.Unlock()
}
