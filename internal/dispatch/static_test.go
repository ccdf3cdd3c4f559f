package dispatch

import (
	"testing"

	"contactd/internal/directory"
	"contactd/pkg/types"
)

func TestStaticPassThrough(t *testing.T) {
	dir := directory.New(directory.DefaultSeed())
	st := NewStatic(dir)

	if err := st.AddContact("Dave", "dave@example.com"); err != nil {
		t.Fatalf("add: %v", err)
	}
	email, err := st.LookupEmailFromName("Dave")
	if err != nil || email != "dave@example.com" {
		t.Fatalf("lookup: %q %v", email, err)
	}
	// adapter adds nothing: the directory and the adapter see identical state
	if got := len(st.Contacts()); got != len(dir.Contacts()) {
		t.Fatalf("adapter view diverged from directory")
	}
}

func TestStaticReRaisesTypedErrors(t *testing.T) {
	st := NewStatic(directory.New(nil))
	if _, err := st.LookupEmailFromName("Eve"); !directory.IsUnknownName(err) {
		t.Fatalf("expected UnknownName through the adapter, got %v", err)
	}
	if _, err := st.LookupNameFromEmail("x@example.com"); !directory.IsUnknownEmail(err) {
		t.Fatalf("expected UnknownEmail through the adapter, got %v", err)
	}
}

func TestStaticBatch(t *testing.T) {
	st := NewStatic(directory.New(nil))
	out, err := st.AddPeople([]types.Person{
		{Name: "P1", Email: "p1@example.com"},
		{Name: "P2", Email: "p2@example.com"},
	})
	if err != nil || len(out) != 2 {
		t.Fatalf("batch: %v %+v", err, out)
	}
}
