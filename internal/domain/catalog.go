package domain

import (
	"fmt"
	"strings"
)

// Catalog is an arena of libraries addressed by LibraryID. It owns the
// session's clip selection state.
type Catalog struct {
	libraries []*Library
	byID      map[LibraryID]*Library
	selection *SelectionState
}

type CatalogOption func(*Catalog)

func WithSelectionState(state *SelectionState) CatalogOption {
	return func(c *Catalog) {
		c.selection = state
	}
}

// NewCatalog resolves parent links between configs and rejects duplicate ids,
// invalid entries, and parent cycles. A non-master library whose parent is
// missing behaves as a master.
func NewCatalog(configs []LibraryConfig, opts ...CatalogOption) (*Catalog, error) {
	c := &Catalog{
		libraries: make([]*Library, 0, len(configs)),
		byID:      make(map[LibraryID]*Library, len(configs)),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.selection == nil {
		c.selection = NewSelectionState(nil)
	}

	for _, cfg := range configs {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		if _, ok := c.byID[cfg.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateLibrary, cfg.ID)
		}

		lib := newLibrary(c, cfg)
		c.libraries = append(c.libraries, lib)
		c.byID[cfg.ID] = lib
	}

	for _, lib := range c.libraries {
		if lib.master || lib.parentID == "" {
			continue
		}
		parent, ok := c.byID[lib.parentID]
		if !ok {
			lib.parentUnresolved = true
			continue
		}
		lib.parent = parent
	}

	if err := c.checkCycles(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Catalog) checkCycles() error {
	for _, start := range c.libraries {
		seen := map[LibraryID]struct{}{}
		path := []string{}
		for lib := start; lib != nil; lib = lib.Parent() {
			path = append(path, string(lib.id))
			if _, ok := seen[lib.id]; ok {
				return fmt.Errorf("%w: %s", ErrParentCycle, strings.Join(path, " -> "))
			}
			seen[lib.id] = struct{}{}
		}
	}

	return nil
}

func (c *Catalog) Library(id LibraryID) (*Library, error) {
	lib, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLibraryNotFound, id)
	}
	return lib, nil
}

// Libraries returns every library in configuration order.
func (c *Catalog) Libraries() []*Library {
	return append([]*Library(nil), c.libraries...)
}

func (c *Catalog) Selection() *SelectionState {
	return c.selection
}
