package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/audiolib/internal/domain"
	"github.com/bnema/audiolib/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	configName          = "config"
	configType          = "toml"
	librariesPathKey    = "libraries.path"
	librariesFileMode   = 0o600
	librariesDirMode    = 0o700
	librariesConfigDir  = ".audiolib"
	librariesConfigFile = "libraries.toml"
	tempFilePattern     = ".libraries-*.toml.tmp"
)

type LibraryRepository struct {
	librariesPath string
	mu            *sync.RWMutex
}

// pathLocks serialises repositories that point at the same file.
var pathLocks sync.Map

var _ ports.LibraryRepository = (*LibraryRepository)(nil)

func NewLibraryRepository(cfg *viper.Viper) (*LibraryRepository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	defaultPath := filepath.Join(homeDir, librariesConfigDir, librariesConfigFile)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, librariesConfigDir))
	cfg.SetDefault(librariesPathKey, defaultPath)

	err = cfg.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	librariesPath, err := resolveLibrariesPath(cfg.GetString(librariesPathKey), homeDir)
	if err != nil {
		return nil, err
	}

	return &LibraryRepository{librariesPath: librariesPath, mu: pathLock(librariesPath)}, nil
}

// Path is the absolute location of the libraries file.
func (r *LibraryRepository) Path() string {
	return r.librariesPath
}

func (r *LibraryRepository) Save(ctx context.Context, lib domain.LibraryConfig) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.load()
	if err != nil {
		return err
	}

	encoded := toSchema(lib)
	updated := false
	for i := range file.Libraries {
		if file.Libraries[i].ID == encoded.ID {
			file.Libraries[i] = encoded
			updated = true
			break
		}
	}

	if !updated {
		file.Libraries = append(file.Libraries, encoded)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.store(file)
}

func (r *LibraryRepository) GetByID(ctx context.Context, id domain.LibraryID) (domain.LibraryConfig, error) {
	if err := ctx.Err(); err != nil {
		return domain.LibraryConfig{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.load()
	if err != nil {
		return domain.LibraryConfig{}, err
	}

	for _, lib := range file.Libraries {
		if lib.ID == string(id) {
			return fromSchema(lib)
		}
	}

	return domain.LibraryConfig{}, fmt.Errorf("%w: %s", domain.ErrLibraryNotFound, id)
}

// List returns every library in file order.
func (r *LibraryRepository) List(ctx context.Context) ([]domain.LibraryConfig, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.load()
	if err != nil {
		return nil, err
	}

	libraries := make([]domain.LibraryConfig, 0, len(file.Libraries))
	for _, lib := range file.Libraries {
		decoded, err := fromSchema(lib)
		if err != nil {
			return nil, err
		}
		libraries = append(libraries, decoded)
	}

	return libraries, nil
}

func (r *LibraryRepository) load() (fileSchema, error) {
	data, err := os.ReadFile(r.librariesPath)
	if errors.Is(err, os.ErrNotExist) {
		return fileSchema{Version: currentSchemaVersion}, nil
	}
	if err != nil {
		return fileSchema{}, fmt.Errorf("read libraries file: %w", err)
	}

	return decodeFile(data)
}

func (r *LibraryRepository) store(file fileSchema) error {
	file.applyDefaults()

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode libraries file: %w", err)
	}

	return writeFileAtomic(r.librariesPath, data)
}

// writeFileAtomic replaces path with data through a temp file in the same
// directory. Readers see either the old or the new file, never a partial one.
func writeFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, librariesDirMode); err != nil {
		return fmt.Errorf("create libraries directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp libraries file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	_, err = tmp.Write(data)
	if err == nil {
		err = tmp.Chmod(librariesFileMode)
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("write temp libraries file: %w", err)
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace libraries file: %w", err)
	}
	return nil
}

// resolveLibrariesPath expands a leading "~" against homeDir and returns a
// clean absolute path.
func resolveLibrariesPath(path, homeDir string) (string, error) {
	path = strings.TrimSpace(path)
	switch {
	case path == "":
		return "", errors.New("libraries path is empty")
	case path == "~":
		path = homeDir
	case strings.HasPrefix(path, "~/"):
		path = filepath.Join(homeDir, path[2:])
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve libraries path: %w", err)
	}
	return abs, nil
}

func pathLock(path string) *sync.RWMutex {
	mu, _ := pathLocks.LoadOrStore(path, &sync.RWMutex{})
	return mu.(*sync.RWMutex)
}

func toSchema(lib domain.LibraryConfig) librarySchema {
	master := lib.Master
	encoded := librarySchema{
		ID:      string(lib.ID),
		Name:    lib.Name,
		Master:  &master,
		Parent:  string(lib.Parent),
		Entries: make([]entrySchema, 0, len(lib.Entries)),
	}

	for _, entry := range lib.Entries {
		volume := entry.VolumeScale
		clips := make([]string, 0, len(entry.Clips))
		for _, clip := range entry.Clips {
			clips = append(clips, string(clip))
		}

		encoded.Entries = append(encoded.Entries, entrySchema{
			Key:       entry.Key,
			Clips:     clips,
			Selection: string(entry.Mode),
			Volume:    &volume,
			Route:     string(entry.Route),
			Delay:     entry.Delay.Seconds(),
		})
	}

	return encoded
}

func fromSchema(lib librarySchema) (domain.LibraryConfig, error) {
	decoded := domain.LibraryConfig{
		ID:     domain.LibraryID(lib.ID),
		Name:   lib.Name,
		Master: lib.Master == nil || *lib.Master,
		Parent: domain.LibraryID(lib.Parent),
	}

	for _, entry := range lib.Entries {
		delay, err := entry.delay()
		if err != nil {
			return domain.LibraryConfig{}, fmt.Errorf("decode library %s: %w", lib.ID, err)
		}

		volume := 1.0
		if entry.Volume != nil {
			volume = *entry.Volume
		}
		clips := make([]domain.ClipID, 0, len(entry.Clips))
		for _, clip := range entry.Clips {
			clips = append(clips, domain.ClipID(clip))
		}

		decoded.Entries = append(decoded.Entries, domain.Entry{
			Key:         entry.Key,
			Clips:       clips,
			Mode:        domain.SelectionMode(entry.Selection),
			VolumeScale: volume,
			Route:       domain.RouteID(entry.Route),
			Delay:       delay,
		})
	}

	return decoded, nil
}
