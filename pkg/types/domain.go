package types

// Contact is a single directory entry keyed by name.
type Contact struct {
	// Unique name of the contact.
	// example: Bob
	Name string `json:"name" example:"Bob"`
	// Email address. Not required to be unique across contacts.
	// example: bob@example.com
	Email string `json:"email" example:"bob@example.com"`
}

// Person is the richer aggregate attached via the people operations.
// It is constructed by the caller; once added, the directory is the sole
// authority for subsequent lookups.
type Person struct {
	// Unique name of the person.
	// example: Carol
	Name string `json:"name" example:"Carol"`
	// Email address.
	// example: carol@example.com
	Email string `json:"email" example:"carol@example.com"`
	// Opaque identifier. Assigned by the server when empty.
	// example: 2f5c9a66-0b4e-4f2c-9a3e-6a1f1f2d8b11
	ID string `json:"id,omitempty" example:"2f5c9a66-0b4e-4f2c-9a3e-6a1f1f2d8b11"`
}

// ObjectRef is an opaque handle-plus-name pair identifying a remote-callable
// entity independent of its physical location. Each logical name maps to
// exactly one live ref at a time; rebinding replaces it.
type ObjectRef struct {
	// Logical name the ref is bound under.
	// example: ContactDirectory
	Name string `json:"name" example:"ContactDirectory"`
	// Opaque servant handle.
	// example: 7b0c2a4e-5a4c-4b7e-8a2f-3d1e9c6f0a21
	Handle string `json:"handle" example:"7b0c2a4e-5a4c-4b7e-8a2f-3d1e9c6f0a21"`
}
