package directory

import (
	"sync"

	"github.com/google/uuid"

	"contactd/pkg/types"
)

// Service is the capability interface the dispatch adapters consume. Both the
// static and the dynamic dispatcher wrap the same concrete Directory through
// it; no other coupling exists between them.
type Service interface {
	LookupEmailFromName(name string) (string, error)
	LookupNameFromEmail(email string) (string, error)
	AddContact(name, email string) error
	AddPerson(p types.Person) (types.Person, error)
	AddPeople(people []types.Person) ([]types.Person, error)
	Contacts() []types.Contact
}

// entry is one stored directory row. personID is empty for plain contacts.
type entry struct {
	contact  types.Contact
	personID string
}

// Directory is the contact store. Entries keep insertion order so reverse
// email lookup is deterministic under duplicates; the index maps a name to
// its slot. It lives for the whole process.
type Directory struct {
	mu      sync.RWMutex
	entries []entry
	index   map[string]int
	pub     EventPublisher
}

var _ Service = (*Directory)(nil)

// DefaultSeed returns the fixed startup entries.
func DefaultSeed() []types.Contact {
	return []types.Contact{
		{Name: "Bob", Email: "bob@example.com"},
		{Name: "Alice", Email: "alice@example.com"},
		{Name: "Mary", Email: "mary@example.com"},
	}
}

// New builds a Directory pre-populated with seed, in order. Duplicate seed
// names collapse onto the first occurrence's slot.
func New(seed []types.Contact) *Directory {
	d := &Directory{index: make(map[string]int), pub: noopPublisher{}}
	for _, c := range seed {
		d.put(c, "")
	}
	return d
}

// SetEventPublisher installs the publisher notified after each mutation.
func (d *Directory) SetEventPublisher(p EventPublisher) {
	if p == nil {
		p = noopPublisher{}
	}
	d.mu.Lock()
	d.pub = p
	d.mu.Unlock()
}

// put inserts or overwrites under d.mu (or before the Directory escapes).
// Overwriting keeps the original insertion slot.
func (d *Directory) put(c types.Contact, personID string) {
	if i, ok := d.index[c.Name]; ok {
		d.entries[i] = entry{contact: c, personID: personID}
		return
	}
	d.index[c.Name] = len(d.entries)
	d.entries = append(d.entries, entry{contact: c, personID: personID})
}

// LookupEmailFromName returns the email bound to name.
func (d *Directory) LookupEmailFromName(name string) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	i, ok := d.index[name]
	if !ok {
		return "", ErrUnknownName(name)
	}
	return d.entries[i].contact.Email, nil
}

// LookupNameFromEmail scans entries in insertion order and returns the first
// name whose email matches.
func (d *Directory) LookupNameFromEmail(email string) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, e := range d.entries {
		if e.contact.Email == email {
			return e.contact.Name, nil
		}
	}
	return "", ErrUnknownEmail(email)
}

// AddContact inserts or overwrites the name -> email binding and emits a
// ContactAdded event.
func (d *Directory) AddContact(name, email string) error {
	c := types.Contact{Name: name, Email: email}
	d.mu.Lock()
	d.put(c, "")
	pub := d.pub
	d.mu.Unlock()
	pub.Publish(Event{Kind: KindContactAdded, Contacts: []types.Contact{c}})
	return nil
}

// AddPerson attaches a previously constructed Person. The directory assigns
// an id when the caller left it empty and becomes the sole authority for
// subsequent lookups. Returns the person as stored.
func (d *Directory) AddPerson(p types.Person) (types.Person, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	c := types.Contact{Name: p.Name, Email: p.Email}
	d.mu.Lock()
	d.put(c, p.ID)
	pub := d.pub
	d.mu.Unlock()
	pub.Publish(Event{
		Kind:     KindPersonAdded,
		Contacts: []types.Contact{c},
		Fields:   map[string]any{"id": p.ID},
	})
	return p, nil
}

// AddPeople attaches a batch under one critical section: a concurrent reader
// observes either none or all of the batch, never a partial subset. Emits a
// single aggregate PeopleAdded event for the whole batch.
func (d *Directory) AddPeople(people []types.Person) ([]types.Person, error) {
	out := make([]types.Person, len(people))
	contacts := make([]types.Contact, len(people))
	ids := make([]string, len(people))
	for i, p := range people {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		out[i] = p
		contacts[i] = types.Contact{Name: p.Name, Email: p.Email}
		ids[i] = p.ID
	}
	d.mu.Lock()
	for i := range out {
		d.put(contacts[i], out[i].ID)
	}
	pub := d.pub
	d.mu.Unlock()
	if len(out) > 0 {
		pub.Publish(Event{
			Kind:     KindPeopleAdded,
			Contacts: contacts,
			Fields:   map[string]any{"count": len(out), "ids": ids},
		})
	}
	return out, nil
}

// Contacts returns a snapshot of all entries in insertion order.
func (d *Directory) Contacts() []types.Contact {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]types.Contact, len(d.entries))
	for i, e := range d.entries {
		out[i] = e.contact
	}
	return out
}

// PersonID returns the opaque id stored for name, if the entry was attached
// as a person.
func (d *Directory) PersonID(name string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	i, ok := d.index[name]
	if !ok || d.entries[i].personID == "" {
		return "", false
	}
	return d.entries[i].personID, true
}
