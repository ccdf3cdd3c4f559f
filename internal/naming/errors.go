package naming

// notFoundError signals an unbound name for 404 mapping.
type notFoundError struct{ name string }

func (e notFoundError) Error() string { return "name not bound: " + e.name }

// ErrNotFound returns the error used when a name has no binding.
func ErrNotFound(name string) error { return notFoundError{name: name} }

// IsNotFound reports whether err indicates a missing binding.
func IsNotFound(err error) bool {
	_, ok := err.(notFoundError)
	return ok
}

// nameSyntaxError signals an empty or malformed logical name.
type nameSyntaxError struct{ name string }

func (e nameSyntaxError) Error() string {
	if e.name == "" {
		return "invalid name: empty"
	}
	return "invalid name: " + e.name
}

// ErrNameSyntax constructs a nameSyntaxError.
func ErrNameSyntax(name string) error { return nameSyntaxError{name: name} }

// IsNameSyntax reports whether err indicates a malformed name.
func IsNameSyntax(err error) bool {
	_, ok := err.(nameSyntaxError)
	return ok
}
