package audit

import (
	"fmt"
	"time"

	"go.jetify.com/typeid/v2"
)

// Event is one audit trail entry.
type Event struct {
	ID         string         `json:"id"`
	Action     string         `json:"action"`
	Resource   string         `json:"resource"`
	ResourceID string         `json:"resource_id,omitempty"`
	Outcome    string         `json:"outcome"`
	Severity   string         `json:"severity"`
	Reason     string         `json:"reason,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	At         time.Time      `json:"at"`
}

// Actions emitted by the Recorder. Each corresponds to one observed
// lifecycle event and becomes the Action field.
const (
	ActionHookRegistered   = "hook.registered"
	ActionHookUnregistered = "hook.unregistered"
	ActionRunCompleted     = "hook.run_completed"
	ActionRunFailed        = "hook.run_failed"
	ActionRegistryChanged  = "registry.changed"
)

// Resource types used as the Resource field.
const (
	ResourceHook     = "hook"
	ResourceRegistry = "registry"
)

// Severity levels.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// AllActions returns every action the Recorder can emit.
func AllActions() []string {
	return []string{
		ActionHookRegistered,
		ActionHookUnregistered,
		ActionRunCompleted,
		ActionRunFailed,
		ActionRegistryChanged,
	}
}

// NewEvent creates an Event with a generated id and the current time.
func NewEvent(action, resource, resourceID string) *Event {
	tid, err := typeid.Generate("audit")
	if err != nil {
		panic(fmt.Sprintf("audit: generate id: %v", err))
	}
	return &Event{
		ID:         tid.String(),
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		Outcome:    OutcomeSuccess,
		Severity:   SeverityInfo,
		At:         time.Now().UTC(),
	}
}
