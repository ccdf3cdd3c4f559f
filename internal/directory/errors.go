package directory

// unknownNameError signals a lookup miss by name for 404 mapping.
type unknownNameError struct{ name string }

func (e unknownNameError) Error() string { return "unknown name: " + e.name }

// ErrUnknownName returns the error for a name absent from the directory.
func ErrUnknownName(name string) error { return unknownNameError{name: name} }

// IsUnknownName reports whether err indicates a missing name.
func IsUnknownName(err error) bool {
	_, ok := err.(unknownNameError)
	return ok
}

// UnknownNameValue extracts the offending name, for exception members.
func UnknownNameValue(err error) (string, bool) {
	e, ok := err.(unknownNameError)
	return e.name, ok
}

// unknownEmailError signals a reverse lookup miss by email.
type unknownEmailError struct{ email string }

func (e unknownEmailError) Error() string { return "unknown email: " + e.email }

// ErrUnknownEmail returns the error for an email no entry matches.
func ErrUnknownEmail(email string) error { return unknownEmailError{email: email} }

// IsUnknownEmail reports whether err indicates a missing email.
func IsUnknownEmail(err error) bool {
	_, ok := err.(unknownEmailError)
	return ok
}

// UnknownEmailValue extracts the offending email, for exception members.
func UnknownEmailValue(err error) (string, bool) {
	e, ok := err.(unknownEmailError)
	return e.email, ok
}
