package domain

import "time"

// ClipID is an opaque reference to a playable clip. The empty value means no clip.
type ClipID string

// RouteID is an opaque reference to a mixer group. The empty value means the
// caller-provided default route.
type RouteID string

type SourceSettings struct {
	Clip        ClipID
	Volume      float64
	Pitch       float64
	Position    time.Duration
	Loop        bool
	PlayOnAwake bool
	Route       RouteID
}

// DefaultSourceSettings returns the values a handle is reset to when it leaves the pool.
func DefaultSourceSettings(route RouteID) SourceSettings {
	return SourceSettings{
		Volume: 1,
		Pitch:  1,
		Route:  route,
	}
}
