package domain

import "time"

const defaultVolumeScale = 1.0

// Library is a resolved, read-only view of a LibraryConfig inside a Catalog.
// Parent links are validated acyclic by NewCatalog.
type Library struct {
	catalog *Catalog

	id               LibraryID
	name             string
	master           bool
	parentID         LibraryID
	parent           *Library
	parentUnresolved bool

	entries []Entry
	lookup  map[string]int
}

func newLibrary(catalog *Catalog, cfg LibraryConfig) *Library {
	lib := &Library{
		catalog:  catalog,
		id:       cfg.ID,
		name:     cfg.Name,
		master:   cfg.Master,
		parentID: cfg.Parent,
		entries:  append([]Entry(nil), cfg.Entries...),
	}
	lib.rebuildLookup()

	return lib
}

// rebuildLookup indexes entries by key. The first occurrence of a key wins.
func (l *Library) rebuildLookup() {
	l.lookup = make(map[string]int, len(l.entries))
	for i, entry := range l.entries {
		if _, ok := l.lookup[entry.Key]; ok {
			continue
		}
		l.lookup[entry.Key] = i
	}
}

func (l *Library) ID() LibraryID {
	return l.id
}

func (l *Library) Name() string {
	return l.name
}

func (l *Library) IsMaster() bool {
	return l.master
}

func (l *Library) HasParent() bool {
	return !l.master && l.parent != nil
}

// Parent returns nil for master libraries regardless of the configured parent.
func (l *Library) Parent() *Library {
	if !l.HasParent() {
		return nil
	}
	return l.parent
}

// ParentUnresolved reports a non-master library whose parent id is not in the catalog.
func (l *Library) ParentUnresolved() bool {
	return l.parentUnresolved
}

func (l *Library) ConfiguredParent() LibraryID {
	return l.parentID
}

// Entry returns the local entry for key without consulting ancestors.
func (l *Library) Entry(key string) (Entry, bool) {
	i, ok := l.lookup[key]
	if !ok {
		return Entry{}, false
	}
	return l.entries[i], true
}

func (l *Library) ContainsKey(key string, includeInherited bool) bool {
	if _, ok := l.lookup[key]; ok {
		return true
	}
	if includeInherited && l.HasParent() {
		return l.parent.ContainsKey(key, true)
	}
	return false
}

// IsOverride reports whether key is defined locally and by an ancestor.
func (l *Library) IsOverride(key string) bool {
	_, local := l.lookup[key]
	return local && l.HasParent() && l.parent.ContainsKey(key, true)
}

// Resolve finds the entry for key, local first and then nearest ancestor first.
func (l *Library) Resolve(key string) (EntryRef, Entry, bool) {
	for lib := l; lib != nil; lib = lib.Parent() {
		if entry, ok := lib.Entry(key); ok {
			return EntryRef{Library: lib.id, Key: key}, entry, true
		}
	}
	return EntryRef{}, Entry{}, false
}

// ClipForKey picks the next clip of the resolved entry. It reports false when
// the key is unknown or the entry has no clips.
func (l *Library) ClipForKey(key string) (ClipID, bool) {
	ref, entry, ok := l.Resolve(key)
	if !ok {
		return "", false
	}
	return l.catalog.selection.Pick(ref, entry)
}

func (l *Library) VolumeForKey(key string) float64 {
	_, entry, ok := l.Resolve(key)
	if !ok {
		return defaultVolumeScale
	}
	return entry.VolumeScale
}

func (l *Library) DelayForKey(key string) time.Duration {
	_, entry, ok := l.Resolve(key)
	if !ok {
		return 0
	}
	return entry.Delay
}

func (l *Library) RouteForKey(key string) RouteID {
	_, entry, ok := l.Resolve(key)
	if !ok {
		return ""
	}
	return entry.Route
}

// Setup applies the clip and volume of a local entry onto settings. Inherited
// entries are not consulted.
func (l *Library) Setup(key string, settings SourceSettings) (SourceSettings, bool) {
	i, ok := l.lookup[key]
	if !ok {
		return settings, false
	}

	entry := l.entries[i]
	clip, _ := l.catalog.selection.Pick(EntryRef{Library: l.id, Key: key}, entry)
	settings.Clip = clip
	settings.Volume = entry.VolumeScale

	return settings, true
}

// Keys returns the distinct keys of this library, optionally unioned with
// every ancestor's keys, in order of first appearance.
func (l *Library) Keys(includeInherited bool) []string {
	keys := newKeySet()
	l.collectKeys(keys, nil, includeInherited)
	return keys.list()
}

// InheritedKeys returns the ancestor keys not declared locally. It returns nil
// when the library has no parent so callers can tell "cannot inherit" apart
// from "inherits nothing new".
func (l *Library) InheritedKeys() []string {
	if !l.HasParent() {
		return nil
	}

	exclude := newKeySet()
	l.collectKeys(exclude, nil, false)

	keys := newKeySet()
	l.collectKeys(keys, exclude, true)

	return keys.list()
}

func (l *Library) collectKeys(keys *keySet, exclude *keySet, includeInherited bool) {
	for _, entry := range l.entries {
		if exclude != nil && exclude.has(entry.Key) {
			continue
		}
		keys.add(entry.Key)
	}

	if includeInherited && l.HasParent() {
		l.parent.collectKeys(keys, exclude, true)
	}
}

type keySet struct {
	seen  map[string]struct{}
	order []string
}

func newKeySet() *keySet {
	return &keySet{seen: map[string]struct{}{}, order: []string{}}
}

func (s *keySet) add(key string) {
	if _, ok := s.seen[key]; ok {
		return
	}
	s.seen[key] = struct{}{}
	s.order = append(s.order, key)
}

func (s *keySet) has(key string) bool {
	_, ok := s.seen[key]
	return ok
}

func (s *keySet) list() []string {
	return append([]string{}, s.order...)
}
