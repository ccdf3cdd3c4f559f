package dispatch

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"contactd/internal/directory"
)

// Stable symbolic exception identifiers. These are the wire contract: a caller
// recognizes the id string, not a Go type.
const (
	ExcUnknownName  = "directory/unknown-name"
	ExcUnknownEmail = "directory/unknown-email"
)

// Exception is a self-describing error value: a stable string id plus
// structured member data, possibly empty.
type Exception struct {
	ID      string
	Members map[string]cty.Value
}

// FromError translates a directory-level domain error into its symbolic
// exception. Returns false for errors with no symbolic form (internal faults).
func FromError(err error) (Exception, bool) {
	switch {
	case directory.IsUnknownName(err):
		name, _ := directory.UnknownNameValue(err)
		return Exception{
			ID:      ExcUnknownName,
			Members: map[string]cty.Value{"name": cty.StringVal(name)},
		}, true
	case directory.IsUnknownEmail(err):
		email, _ := directory.UnknownEmailValue(err)
		return Exception{
			ID:      ExcUnknownEmail,
			Members: map[string]cty.Value{"email": cty.StringVal(email)},
		}, true
	}
	return Exception{}, false
}

// ErrorFromException is the caller-side inverse of FromError: it re-raises a
// symbolic exception as the matching typed error, so a dynamic caller can
// handle failures exactly like a static one.
func ErrorFromException(exc Exception) error {
	switch exc.ID {
	case ExcUnknownName:
		return directory.ErrUnknownName(memberString(exc, "name"))
	case ExcUnknownEmail:
		return directory.ErrUnknownEmail(memberString(exc, "email"))
	}
	return fmt.Errorf("unrecognized exception id %q", exc.ID)
}

func memberString(exc Exception, key string) string {
	v, ok := exc.Members[key]
	if !ok || v.IsNull() || !v.Type().Equals(cty.String) {
		return ""
	}
	return v.AsString()
}
