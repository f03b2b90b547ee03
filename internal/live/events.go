// Package live is the publish/subscribe channel delivering notification
// lifecycle signals to connected dashboards. Events carry no payload: every
// signal means "something changed, resynchronize", which keeps delivery
// ordering and duplication harmless.
package live

// Event is a named notification-scoped signal.
type Event string

const (
	EventCreated Event = "newNotification"
	EventUpdated Event = "notificationUpdated"
	EventDeleted Event = "notificationDeleted"
)

// Publisher is the mutation-side entry point. With a redis backplane it fans
// out across instances; without one it broadcasts in-process.
type Publisher interface {
	Publish(event Event)
}
