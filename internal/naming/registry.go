// Package naming maps logical names to object references. It is the single
// place clients consult to locate a servant without prior connection info:
// resolve a name, get back an opaque handle, invoke against the handle.
package naming

import (
	"sort"
	"strings"
	"sync"

	"contactd/pkg/types"
)

// reservedSeparators are rejected inside logical names so they stay usable
// as single path segments on the wire.
const reservedSeparators = "/."

// Registry is an in-process name service: logical name -> ObjectRef.
// Each name maps to exactly one live ref; rebinding replaces, never appends.
type Registry struct {
	mu       sync.RWMutex
	bindings map[string]types.ObjectRef
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{bindings: make(map[string]types.ObjectRef)}
}

func checkName(name string) error {
	if name == "" || strings.ContainsAny(name, reservedSeparators) {
		return ErrNameSyntax(name)
	}
	return nil
}

// Register binds name to ref, replacing any prior binding. Idempotent under
// repeated identical calls.
func (r *Registry) Register(name string, ref types.ObjectRef) error {
	return r.Rebind(name, ref)
}

// Rebind binds name to ref, replacing any prior binding for that name.
func (r *Registry) Rebind(name string, ref types.ObjectRef) error {
	if err := checkName(name); err != nil {
		return err
	}
	ref.Name = name
	r.mu.Lock()
	r.bindings[name] = ref
	r.mu.Unlock()
	return nil
}

// Resolve returns the ref bound to name.
func (r *Registry) Resolve(name string) (types.ObjectRef, error) {
	if err := checkName(name); err != nil {
		return types.ObjectRef{}, err
	}
	r.mu.RLock()
	ref, ok := r.bindings[name]
	r.mu.RUnlock()
	if !ok {
		return types.ObjectRef{}, ErrNotFound(name)
	}
	return ref, nil
}

// List returns a snapshot of all bindings sorted by name.
func (r *Registry) List() []types.ObjectRef {
	r.mu.RLock()
	out := make([]types.ObjectRef, 0, len(r.bindings))
	for _, ref := range r.bindings {
		out = append(out, ref)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
