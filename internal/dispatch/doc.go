// Package dispatch adapts the directory service onto the two request surfaces:
//
//   - static.go: typed pass-through adapter, one method per operation.
//   - dynamic.go: operation table keyed by name; services requests described
//     only by an operation name and an ordered list of typed values.
//   - exception.go: symbolic exception envelope and the id <-> error mapping.
//   - wire.go: cty <-> wire conversion for values and exceptions.
//   - errors.go: protocol error types (IsUnsupportedOperation, IsArgumentType).
//
// The generic argument container is cty.Value: a tagged variant (type + payload)
// that callers can construct and inspect without any compiled interface stub.
// A dynamic reply carries either a typed result value or a symbolic exception
// (stable string id plus structured members) over the same channel; callers
// need only the shared tag and id conventions to decode either.
package dispatch
