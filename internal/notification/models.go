// Package notification implements the admin-to-admin notification records:
// created by one administrator, visible to all, with a shared read/unread
// state on the record itself. Mutations fan out live signals so every open
// dashboard resynchronizes.
package notification

import (
	"time"

	"github.com/google/uuid"
)

// Record is one notification. IsRead is a property of the record as stored,
// not per viewer.
type Record struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Message      string    `json:"message"`
	IsRead       bool      `json:"isRead"`
	CreatedBy    uuid.UUID `json:"createdBy"`
	CreatorName  string    `json:"creatorName"`
	CreatorEmail string    `json:"creatorEmail"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CanModify reports whether the viewing admin owns this record. Only the
// creator may edit or delete. This also drives the client-side control gate;
// the controls being hidden is a UX convenience, this server-side check is
// the boundary that matters.
func (r Record) CanModify(viewer uuid.UUID) bool {
	return r.CreatedBy == viewer
}
