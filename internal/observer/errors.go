package observer

// deliveryError marks one failed delivery to one observer. Never fatal to the
// notifying call; failures are collected and reported.
type deliveryError struct {
	handle string
	err    error
}

func (e deliveryError) Error() string { return "deliver to " + e.handle + ": " + e.err.Error() }

func (e deliveryError) Unwrap() error { return e.err }

// ErrDelivery constructs a per-observer delivery error.
func ErrDelivery(handle string, err error) error { return deliveryError{handle: handle, err: err} }

// IsDelivery reports whether err is a single-observer delivery failure.
func IsDelivery(err error) bool {
	_, ok := err.(deliveryError)
	return ok
}
