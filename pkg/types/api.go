package types

import "encoding/json"

// ContactsResponse wraps the list returned by GET /directory/contacts.
type ContactsResponse struct {
	// All directory entries in insertion order.
	Contacts []Contact `json:"contacts"`
}

// EmailResponse is returned by the name -> email lookup.
type EmailResponse struct {
	// example: Bob
	Name string `json:"name" example:"Bob"`
	// example: bob@example.com
	Email string `json:"email" example:"bob@example.com"`
}

// NameResponse is returned by the email -> name reverse lookup.
type NameResponse struct {
	// example: mary@example.com
	Email string `json:"email" example:"mary@example.com"`
	// example: Mary
	Name string `json:"name" example:"Mary"`
}

// AddPeopleRequest is the bulk attach payload.
type AddPeopleRequest struct {
	People []Person `json:"people"`
}

// NamesResponse lists the current name registry bindings.
type NamesResponse struct {
	Bindings []ObjectRef `json:"bindings"`
}

// RebindRequest binds a logical name to a servant handle.
type RebindRequest struct {
	// example: 7b0c2a4e-5a4c-4b7e-8a2f-3d1e9c6f0a21
	Handle string `json:"handle" example:"7b0c2a4e-5a4c-4b7e-8a2f-3d1e9c6f0a21"`
}

// WireValue is a self-describing typed value: an explicit type tag plus the
// value serialized for that type. Both halves use the cty JSON encoding, so
// heterogeneous callers only need the shared tag convention to decode.
type WireValue struct {
	// cty type expression, e.g. "string" or ["object",{"name":"string"}].
	Type json.RawMessage `json:"type" swaggertype:"object"`
	// Value serialized according to Type.
	Value json.RawMessage `json:"value" swaggertype:"object"`
}

// WireException is the symbolic exception envelope: a stable string id plus
// structured member data, carried over the same reply channel as results.
type WireException struct {
	// Stable exception identifier.
	// example: directory/unknown-name
	ID string `json:"id" example:"directory/unknown-name"`
	// Structured members, possibly empty.
	Members map[string]WireValue `json:"members,omitempty"`
}

// InvokeRequest describes a dynamic invocation: an operation name plus an
// ordered sequence of typed arguments.
type InvokeRequest struct {
	// Operation name to resolve against the servant's operation table.
	// example: lookupEmailFromName
	Op string `json:"op" example:"lookupEmailFromName"`
	// Positional arguments.
	Args []WireValue `json:"args,omitempty"`
}

// InvokeResponse carries either a typed result or a symbolic exception,
// never both.
type InvokeResponse struct {
	Result    *WireValue     `json:"result,omitempty"`
	Exception *WireException `json:"exception,omitempty"`
}

// OperationInfo describes one entry of a servant's operation table.
type OperationInfo struct {
	// example: addContact
	Name string `json:"name" example:"addContact"`
	// cty type expressions for the positional parameters.
	Params []json.RawMessage `json:"params" swaggertype:"array,object"`
	// cty type expression for the result.
	Result json.RawMessage `json:"result" swaggertype:"object"`
}

// SubscribeRequest registers a webhook observer.
type SubscribeRequest struct {
	// URL that will receive event payloads via POST.
	// example: http://127.0.0.1:9090/events
	URL string `json:"url" example:"http://127.0.0.1:9090/events"`
}

// SubscribeResponse returns the subscription id used for unsubscribe.
type SubscribeResponse struct {
	// example: 5d1f7c3a-9f64-4f5e-b0a2-7d2c1e8a9b42
	ID string `json:"id" example:"5d1f7c3a-9f64-4f5e-b0a2-7d2c1e8a9b42"`
}

// ObserversResponse lists current subscriptions.
type ObserversResponse struct {
	Observers []ObjectRef `json:"observers"`
}

// EventPayload is what observers receive on each directory change.
type EventPayload struct {
	// Event kind: contact_added, person_added or people_added.
	// example: contact_added
	Kind string `json:"kind" example:"contact_added"`
	// Entries the event is about. One for contact/person events, the whole
	// batch for people_added.
	Contacts []Contact `json:"contacts"`
	// Optional extra fields (person ids, batch size).
	Fields map[string]any `json:"fields,omitempty"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}
