// Package audit implements the append-only audit trail: recording structured
// change payloads when an administrator mutates a domain entity, and
// reconstructing a displayable view of the change later. Records survive
// schema drift: the payload is an opaque JSON blob interpreted defensively at
// render time, never at write time.
package audit

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Record is one immutable audit entry. ActionKind is deliberately a free
// string at the storage layer; new kinds appear as the console grows and old
// records must keep rendering.
type Record struct {
	ID         uuid.UUID `json:"id"`
	ActorID    uuid.UUID `json:"actorId"`
	ActorName  string    `json:"actorName"`
	ActionKind string    `json:"actionKind"`
	Timestamp  time.Time `json:"timestamp"`

	// DeviceInfo is the raw client fingerprint (user-agent string), optional.
	DeviceInfo string `json:"deviceInfo,omitempty"`

	// ChangePayload is absent or a JSON object whose shape depends on
	// ActionKind. It is stored verbatim; parse failures are a display
	// concern, not a storage one.
	ChangePayload json.RawMessage `json:"changePayload,omitempty"`
}

// ActorDisplayName returns the display name, "N/A" when actor metadata is
// absent.
func (r Record) ActorDisplayName() string {
	if r.ActorName == "" {
		return "N/A"
	}
	return r.ActorName
}
