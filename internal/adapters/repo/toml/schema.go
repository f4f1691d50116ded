package toml

import (
	"fmt"
	"math"
	"time"

	"github.com/bnema/audiolib/internal/domain"
	toml "github.com/pelletier/go-toml/v2"
)

const currentSchemaVersion = 1

// maxDelaySeconds is the longest delay a time.Duration can hold.
const maxDelaySeconds = float64(math.MaxInt64 / int64(time.Second))

type fileSchema struct {
	Version   int             `toml:"version"`
	Libraries []librarySchema `toml:"libraries"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
	for i := range s.Libraries {
		s.Libraries[i].applyDefaults()
	}
}

func decodeFile(data []byte) (fileSchema, error) {
	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode libraries file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported libraries schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

// librarySchema leaves master and volume as pointers so an omitted value can
// be told apart from an explicit false or zero.
type librarySchema struct {
	ID      string        `toml:"id"`
	Name    string        `toml:"name,omitempty"`
	Master  *bool         `toml:"master,omitempty"`
	Parent  string        `toml:"parent,omitempty"`
	Entries []entrySchema `toml:"entries,omitempty"`
}

func (s *librarySchema) applyDefaults() {
	if s.Master == nil {
		master := true
		s.Master = &master
	}
	for i := range s.Entries {
		s.Entries[i].applyDefaults()
	}
}

type entrySchema struct {
	Key       string   `toml:"key"`
	Clips     []string `toml:"clips"`
	Selection string   `toml:"selection,omitempty"`
	Volume    *float64 `toml:"volume,omitempty"`
	Route     string   `toml:"route,omitempty"`
	Delay     float64  `toml:"delay,omitempty"`
}

func (s *entrySchema) applyDefaults() {
	if s.Selection == "" {
		s.Selection = string(domain.SelectionRandom)
	}
	if s.Volume == nil {
		volume := 1.0
		s.Volume = &volume
	}
	if s.Clips == nil {
		s.Clips = []string{}
	}
}

// delay converts the authored seconds into a Duration. Negative values mean
// no delay.
func (s entrySchema) delay() (time.Duration, error) {
	switch {
	case math.IsNaN(s.Delay) || s.Delay > maxDelaySeconds:
		return 0, fmt.Errorf("%w: key %q: delay %v seconds out of range", domain.ErrInvalidEntry, s.Key, s.Delay)
	case s.Delay <= 0:
		return 0, nil
	}
	return time.Duration(s.Delay * float64(time.Second)), nil
}
