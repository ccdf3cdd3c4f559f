package naming

import (
	"fmt"
	"sync"
	"testing"

	"contactd/pkg/types"
)

func TestRegisterAndResolve(t *testing.T) {
	r := New()
	ref := types.ObjectRef{Handle: "h1"}
	if err := r.Register("ContactDirectory", ref); err != nil {
		t.Fatalf("register: %v", err)
	}
	got, err := r.Resolve("ContactDirectory")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.Handle != "h1" {
		t.Fatalf("expected handle h1 got %q", got.Handle)
	}
	if got.Name != "ContactDirectory" {
		t.Fatalf("expected ref name to carry the bound name, got %q", got.Name)
	}
}

func TestResolveUnbound(t *testing.T) {
	r := New()
	_, err := r.Resolve("missing")
	if err == nil || !IsNotFound(err) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestRebindReplaces(t *testing.T) {
	r := New()
	if err := r.Register("dir", types.ObjectRef{Handle: "old"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := r.Rebind("dir", types.ObjectRef{Handle: "new"}); err != nil {
		t.Fatalf("rebind: %v", err)
	}
	got, err := r.Resolve("dir")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.Handle != "new" {
		t.Fatalf("rebind did not replace binding, got %q", got.Handle)
	}
	if len(r.List()) != 1 {
		t.Fatalf("rebind appended instead of replacing: %v", r.List())
	}
}

func TestRegisterIdempotent(t *testing.T) {
	r := New()
	ref := types.ObjectRef{Handle: "h"}
	for i := 0; i < 3; i++ {
		if err := r.Register("dir", ref); err != nil {
			t.Fatalf("register #%d: %v", i, err)
		}
	}
	if n := len(r.List()); n != 1 {
		t.Fatalf("expected 1 binding got %d", n)
	}
}

func TestNameSyntax(t *testing.T) {
	r := New()
	for _, name := range []string{"", "a/b", "a.b"} {
		if err := r.Register(name, types.ObjectRef{Handle: "h"}); err == nil || !IsNameSyntax(err) {
			t.Fatalf("name %q: expected syntax error, got %v", name, err)
		}
		if _, err := r.Resolve(name); err == nil || !IsNameSyntax(err) {
			t.Fatalf("resolve %q: expected syntax error, got %v", name, err)
		}
	}
}

func TestListSorted(t *testing.T) {
	r := New()
	for _, name := range []string{"c", "a", "b"} {
		if err := r.Register(name, types.ObjectRef{Handle: name + "-h"}); err != nil {
			t.Fatalf("register: %v", err)
		}
	}
	got := r.List()
	if len(got) != 3 || got[0].Name != "a" || got[1].Name != "b" || got[2].Name != "c" {
		t.Fatalf("expected sorted bindings, got %v", got)
	}
}

func TestConcurrentDistinctNames(t *testing.T) {
	r := New()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("svc-%d", i)
			for j := 0; j < 100; j++ {
				_ = r.Rebind(name, types.ObjectRef{Handle: fmt.Sprintf("h-%d-%d", i, j)})
				if _, err := r.Resolve(name); err != nil {
					t.Errorf("resolve %s: %v", name, err)
					return
				}
			}
		}(i)
	}
	wg.Wait()
	if n := len(r.List()); n != 16 {
		t.Fatalf("expected 16 bindings got %d", n)
	}
}
