package memory

import (
	"sync"

	"github.com/bnema/audiolib/internal/ports"
)

// Mixer stores exposed parameters in decibels, the unit a host mixer uses.
type Mixer struct {
	mu     sync.RWMutex
	params map[string]float64
}

var _ ports.Mixer = (*Mixer)(nil)

// NewMixer exposes each named parameter at 0 dB. Unknown parameters cannot be set.
func NewMixer(exposed ...string) *Mixer {
	params := make(map[string]float64, len(exposed))
	for _, name := range exposed {
		params[name] = 0
	}

	return &Mixer{params: params}
}

func (m *Mixer) GetFloat(name string) (float64, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.params[name]
	return value, ok
}

func (m *Mixer) SetFloat(name string, value float64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.params[name]; !ok {
		return false
	}
	m.params[name] = value
	return true
}
