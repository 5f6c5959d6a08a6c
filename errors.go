package reactium

import "errors"

var (
	// Registry errors.
	ErrEntryProtected = errors.New("reactium: entry protected")
	ErrEntryBanned    = errors.New("reactium: entry id banned")
	ErrEntryNotFound  = errors.New("reactium: entry not found")

	// Plugin errors.
	ErrPluginNotFound = errors.New("reactium: plugin not found")
	ErrHostBooted     = errors.New("reactium: plugin host already booted")

	// Pulse errors.
	ErrTaskNotFound  = errors.New("reactium: pulse task not found")
	ErrRunnerStarted = errors.New("reactium: pulse runner already started")
	ErrBadSchedule   = errors.New("reactium: invalid pulse schedule")

	// Server errors.
	ErrServerNotBuilt = errors.New("reactium: server not built")

	// Store errors.
	ErrStoreClosed = errors.New("reactium: audit store closed")
)
