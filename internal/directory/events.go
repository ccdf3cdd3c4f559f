package directory

import "contactd/pkg/types"

// Event kinds emitted on directory mutations.
const (
	KindContactAdded = "contact_added"
	KindPersonAdded  = "person_added"
	KindPeopleAdded  = "people_added"
)

// Event represents a directory change event.
// Minimal and stable: kind + affected entries and optional fields via key/values.
type Event struct {
	Kind     string
	Contacts []types.Contact
	Fields   map[string]any
}

// EventPublisher receives events from the directory. Implementations should be
// lightweight and non-blocking; Publish must not panic.
type EventPublisher interface {
	Publish(Event)
}

// noopPublisher is the default; it drops events.
type noopPublisher struct{}

func (noopPublisher) Publish(Event) {}
