package salon

// Payload defers request body decoding until the caller has been
// authorized, so a rejected caller never sees body validation errors.
type Payload[T any] func() (T, error)

func (p Payload[T]) Decode() (T, error) {
	return p()
}

// Value wraps an already decoded body.
func Value[T any](v T) Payload[T] {
	return func() (T, error) { return v, nil }
}
