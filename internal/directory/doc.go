// Package directory owns the contact store and its business invariants. It is
// structured into small files by concern:
//
//   - directory.go: core Directory type, constructor, lookups and mutations.
//   - errors.go: error types and helpers (IsUnknownName, IsUnknownEmail).
//   - events.go: change events and the EventPublisher interface.
//   - eventpub_memory.go: in-memory publisher used by tests.
//
// The store is insertion-ordered: reverse email lookup returns the earliest
// inserted name among duplicates, and overwriting a name keeps its original
// position. All operations take a single lock for their whole duration, so a
// reader never observes a partially applied mutation and bulk adds are atomic
// as a unit.
//
// External packages should treat this package as the single authority for
// directory state and use public methods only; the dispatch adapters in
// internal/dispatch consume it through the Service interface.
package directory
