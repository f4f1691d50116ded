package application

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/bnema/audiolib/internal/domain"
	"github.com/bnema/audiolib/internal/ports"
	"github.com/patrickmn/go-cache"
)

type LibraryService struct {
	repo      ports.LibraryRepository
	logger    *slog.Logger
	selection *domain.SelectionState

	mu      sync.RWMutex
	catalog *domain.Catalog
	views   *cache.Cache
}

type LibraryServiceOption func(*LibraryService)

func WithLibraryLogger(logger *slog.Logger) LibraryServiceOption {
	return func(s *LibraryService) {
		if logger != nil {
			s.logger = logger.With("module", "library")
		}
	}
}

// WithSelection shares clip rotation state across catalog reloads.
func WithSelection(state *domain.SelectionState) LibraryServiceOption {
	return func(s *LibraryService) {
		if state != nil {
			s.selection = state
		}
	}
}

func NewLibraryService(repo ports.LibraryRepository, opts ...LibraryServiceOption) *LibraryService {
	s := &LibraryService{
		repo:   repo,
		logger: slog.New(slog.DiscardHandler),
		views:  cache.New(cache.NoExpiration, 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.selection == nil {
		s.selection = domain.NewSelectionState(nil)
	}

	return s
}

// Load reads every library from the repository and replaces the cached catalog.
func (s *LibraryService) Load(ctx context.Context) (*domain.Catalog, error) {
	configs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list libraries: %w", err)
	}

	catalog, err := domain.NewCatalog(configs, domain.WithSelectionState(s.selection))
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}

	for _, lib := range catalog.Libraries() {
		if lib.ParentUnresolved() {
			s.logger.Warn("library parent not found, treating as master",
				"library", lib.ID(), "parent", lib.ConfiguredParent())
		}
	}

	s.mu.Lock()
	s.catalog = catalog
	s.views.Flush()
	s.mu.Unlock()

	s.logger.Debug("catalog loaded", "libraries", len(configs))
	return catalog, nil
}

func (s *LibraryService) Catalog(ctx context.Context) (*domain.Catalog, error) {
	s.mu.RLock()
	catalog := s.catalog
	s.mu.RUnlock()

	if catalog != nil {
		return catalog, nil
	}
	return s.Load(ctx)
}

func (s *LibraryService) Library(ctx context.Context, id domain.LibraryID) (*domain.Library, error) {
	catalog, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Library(id)
}

func (s *LibraryService) Keys(ctx context.Context, id domain.LibraryID, includeInherited bool) ([]string, error) {
	lib, err := s.Library(ctx, id)
	if err != nil {
		return nil, err
	}
	return lib.Keys(includeInherited), nil
}

// InheritedKeys reports false when the library has no parent to inherit from.
func (s *LibraryService) InheritedKeys(ctx context.Context, id domain.LibraryID) ([]string, bool, error) {
	lib, err := s.Library(ctx, id)
	if err != nil {
		return nil, false, err
	}

	keys := lib.InheritedKeys()
	return keys, keys != nil, nil
}

func (s *LibraryService) Overrides(ctx context.Context, id domain.LibraryID) ([]string, error) {
	lib, err := s.Library(ctx, id)
	if err != nil {
		return nil, err
	}

	overrides := []string{}
	for _, key := range lib.Keys(false) {
		if lib.IsOverride(key) {
			overrides = append(overrides, key)
		}
	}
	return overrides, nil
}

type KeyOrigin string

const (
	KeyLocal     KeyOrigin = "local"
	KeyOverride  KeyOrigin = "override"
	KeyInherited KeyOrigin = "inherited"
)

type KeyView struct {
	Key    string               `json:"key" yaml:"key"`
	Origin KeyOrigin            `json:"origin" yaml:"origin"`
	Source domain.LibraryID     `json:"source" yaml:"source"`
	Clips  []domain.ClipID      `json:"clips" yaml:"clips"`
	Mode   domain.SelectionMode `json:"selection" yaml:"selection"`
	Volume float64              `json:"volume" yaml:"volume"`
	Route  domain.RouteID       `json:"route,omitempty" yaml:"route,omitempty"`
	Delay  time.Duration        `json:"delay" yaml:"delay"`
}

type LibraryView struct {
	ID        domain.LibraryID   `json:"id" yaml:"id"`
	Name      string             `json:"name" yaml:"name"`
	Master    bool               `json:"master" yaml:"master"`
	Parent    domain.LibraryID   `json:"parent,omitempty" yaml:"parent,omitempty"`
	Chain     []domain.LibraryID `json:"chain" yaml:"chain"`
	Keys      []KeyView          `json:"keys" yaml:"keys"`
	Inherited []string           `json:"inherited" yaml:"inherited"`
}

func (v LibraryView) clone() LibraryView {
	v.Chain = slices.Clone(v.Chain)
	v.Inherited = slices.Clone(v.Inherited)
	v.Keys = slices.Clone(v.Keys)
	for i := range v.Keys {
		v.Keys[i].Clips = slices.Clone(v.Keys[i].Clips)
	}
	return v
}

// Describe resolves every key visible from the library. Views are memoised
// until the next Load or SaveLibrary.
func (s *LibraryService) Describe(ctx context.Context, id domain.LibraryID) (LibraryView, error) {
	lib, err := s.Library(ctx, id)
	if err != nil {
		return LibraryView{}, err
	}

	if cached, ok := s.views.Get(string(id)); ok {
		return cached.(LibraryView).clone(), nil
	}

	view := LibraryView{
		ID:        lib.ID(),
		Name:      lib.Name(),
		Master:    lib.IsMaster(),
		Inherited: lib.InheritedKeys(),
	}
	for ancestor := lib; ancestor != nil; ancestor = ancestor.Parent() {
		view.Chain = append(view.Chain, ancestor.ID())
	}
	if parent := lib.Parent(); parent != nil {
		view.Parent = parent.ID()
	}

	for _, key := range lib.Keys(true) {
		ref, entry, ok := lib.Resolve(key)
		if !ok {
			continue
		}

		origin := KeyInherited
		if lib.IsOverride(key) {
			origin = KeyOverride
		} else if lib.ContainsKey(key, false) {
			origin = KeyLocal
		}

		view.Keys = append(view.Keys, KeyView{
			Key:    key,
			Origin: origin,
			Source: ref.Library,
			Clips:  append([]domain.ClipID{}, entry.Clips...),
			Mode:   entry.Mode,
			Volume: entry.VolumeScale,
			Route:  entry.Route,
			Delay:  entry.Delay,
		})
	}

	s.views.Set(string(id), view.clone(), cache.NoExpiration)
	return view, nil
}

type IssueSeverity string

const (
	SeverityWarning IssueSeverity = "warning"
	SeverityError   IssueSeverity = "error"
)

type Issue struct {
	Library  domain.LibraryID
	Key      string
	Severity IssueSeverity
	Message  string
}

// Check inspects the authored libraries for problems that load silently:
// shadowed duplicate keys, entries without clips, ignored or missing parents,
// as well as anything that prevents the catalog from being built.
func (s *LibraryService) Check(ctx context.Context) ([]Issue, error) {
	configs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list libraries: %w", err)
	}

	known := make(map[domain.LibraryID]struct{}, len(configs))
	for _, cfg := range configs {
		known[cfg.ID] = struct{}{}
	}

	issues := []Issue{}
	for _, cfg := range configs {
		if cfg.Master && cfg.Parent != "" {
			issues = append(issues, Issue{Library: cfg.ID, Severity: SeverityWarning,
				Message: fmt.Sprintf("master library ignores parent %q", cfg.Parent)})
		}
		if !cfg.Master {
			if cfg.Parent == "" {
				issues = append(issues, Issue{Library: cfg.ID, Severity: SeverityWarning,
					Message: "library is not master but has no parent"})
			} else if _, ok := known[cfg.Parent]; !ok {
				issues = append(issues, Issue{Library: cfg.ID, Severity: SeverityWarning,
					Message: fmt.Sprintf("parent %q not found", cfg.Parent)})
			}
		}

		seen := map[string]struct{}{}
		for _, entry := range cfg.Entries {
			if _, ok := seen[entry.Key]; ok {
				issues = append(issues, Issue{Library: cfg.ID, Key: entry.Key, Severity: SeverityWarning,
					Message: "duplicate key is ignored, first entry wins"})
				continue
			}
			seen[entry.Key] = struct{}{}
			if len(entry.Clips) == 0 {
				issues = append(issues, Issue{Library: cfg.ID, Key: entry.Key, Severity: SeverityWarning,
					Message: "entry has no clips"})
			}
		}
	}

	if _, err := domain.NewCatalog(configs); err != nil {
		issues = append(issues, Issue{Severity: SeverityError, Message: err.Error()})
	}

	return issues, nil
}

// Config reads the authored library straight from the repository. It works
// even when the stored libraries no longer form a valid catalog.
func (s *LibraryService) Config(ctx context.Context, id domain.LibraryID) (domain.LibraryConfig, error) {
	cfg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.LibraryConfig{}, fmt.Errorf("get library %s: %w", id, err)
	}
	return cfg, nil
}

// SaveLibrary persists cfg once the resulting catalog is known to be valid.
func (s *LibraryService) SaveLibrary(ctx context.Context, cfg domain.LibraryConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	configs, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("list libraries: %w", err)
	}

	replaced := false
	for i := range configs {
		if configs[i].ID == cfg.ID {
			configs[i] = cfg
			replaced = true
			break
		}
	}
	if !replaced {
		configs = append(configs, cfg)
	}

	if _, err := domain.NewCatalog(configs); err != nil {
		return fmt.Errorf("save library %s: %w", cfg.ID, err)
	}

	if err := s.repo.Save(ctx, cfg); err != nil {
		return fmt.Errorf("save library: %w", err)
	}

	s.mu.Lock()
	s.catalog = nil
	s.views.Flush()
	s.mu.Unlock()

	return nil
}
