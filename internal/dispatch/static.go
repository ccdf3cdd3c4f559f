package dispatch

import (
	"contactd/internal/directory"
	"contactd/pkg/types"
)

// Static is the strongly-typed dispatcher: one call per directory operation,
// blocking until the operation completes and re-raising the directory's typed
// errors unchanged. Behaviourally a transparent pass-through; it exists so the
// typed surface and the dynamic surface are two independent adapters over the
// same Service instance.
type Static struct {
	svc directory.Service
}

// NewStatic wraps svc.
func NewStatic(svc directory.Service) *Static { return &Static{svc: svc} }

func (s *Static) LookupEmailFromName(name string) (string, error) {
	return s.svc.LookupEmailFromName(name)
}

func (s *Static) LookupNameFromEmail(email string) (string, error) {
	return s.svc.LookupNameFromEmail(email)
}

func (s *Static) AddContact(name, email string) error {
	return s.svc.AddContact(name, email)
}

func (s *Static) AddPerson(p types.Person) (types.Person, error) {
	return s.svc.AddPerson(p)
}

func (s *Static) AddPeople(people []types.Person) ([]types.Person, error) {
	return s.svc.AddPeople(people)
}

func (s *Static) Contacts() []types.Contact {
	return s.svc.Contacts()
}
