package dispatch

// unsupportedOperationError signals an operation name absent from the table.
type unsupportedOperationError struct{ op string }

func (e unsupportedOperationError) Error() string { return "unsupported operation: " + e.op }

// ErrUnsupportedOperation constructs the error for an unknown operation name.
func ErrUnsupportedOperation(op string) error { return unsupportedOperationError{op: op} }

// IsUnsupportedOperation reports whether err indicates an unknown operation.
func IsUnsupportedOperation(err error) bool {
	_, ok := err.(unsupportedOperationError)
	return ok
}

// argumentTypeError signals an arity or per-position type mismatch.
type argumentTypeError struct {
	op     string
	detail string
}

func (e argumentTypeError) Error() string { return "bad arguments for " + e.op + ": " + e.detail }

// ErrArgumentType constructs an argumentTypeError.
func ErrArgumentType(op, detail string) error { return argumentTypeError{op: op, detail: detail} }

// IsArgumentType reports whether err indicates a signature mismatch.
func IsArgumentType(err error) bool {
	_, ok := err.(argumentTypeError)
	return ok
}
