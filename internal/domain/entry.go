package domain

import (
	"fmt"
	"strings"
	"time"
)

type SelectionMode string

const (
	SelectionRandom     SelectionMode = "random"
	SelectionSequential SelectionMode = "sequential"
)

func (m SelectionMode) Valid() bool {
	switch m {
	case SelectionRandom, SelectionSequential:
		return true
	default:
		return false
	}
}

// Entry is the authored configuration of a single library key. It carries no
// runtime state; clip rotation lives in SelectionState.
type Entry struct {
	Key         string
	Clips       []ClipID
	Mode        SelectionMode
	VolumeScale float64
	Route       RouteID
	Delay       time.Duration
}

// EntryRef identifies an entry inside a catalog.
type EntryRef struct {
	Library LibraryID
	Key     string
}

func (e Entry) Validate() error {
	if strings.TrimSpace(e.Key) == "" {
		return fmt.Errorf("%w: key is required", ErrInvalidEntry)
	}
	if !e.Mode.Valid() {
		return fmt.Errorf("%w: key %q: unsupported selection mode %q", ErrInvalidEntry, e.Key, e.Mode)
	}
	if !(e.VolumeScale >= 0 && e.VolumeScale <= 1) {
		return fmt.Errorf("%w: key %q: volume %v outside [0,1]", ErrInvalidEntry, e.Key, e.VolumeScale)
	}
	if e.Delay < 0 {
		return fmt.Errorf("%w: key %q: negative delay %s", ErrInvalidEntry, e.Key, e.Delay)
	}

	return nil
}

type LibraryID string

// LibraryConfig is the authored form of a library as persisted by a repository.
type LibraryConfig struct {
	ID      LibraryID
	Name    string
	Master  bool
	Parent  LibraryID
	Entries []Entry
}

func (c LibraryConfig) Validate() error {
	if strings.TrimSpace(string(c.ID)) == "" {
		return fmt.Errorf("id is required")
	}
	for _, entry := range c.Entries {
		if err := entry.Validate(); err != nil {
			return fmt.Errorf("library %s: %w", c.ID, err)
		}
	}

	return nil
}
