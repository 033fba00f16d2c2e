// Package options provides the generic functional options shared by the
// reader, writer and series constructors.
package options

// Option configures a target of type T, typically a pointer to an unexported
// config struct.
type Option[T any] interface {
	apply(T) error
}

// Func adapts a plain function to an Option.
type Func[T any] func(T) error

func (f Func[T]) apply(target T) error { return f(target) }

// New creates an option that may reject its input.
func New[T any](fn func(T) error) Func[T] {
	return Func[T](fn)
}

// NoError creates an option that cannot fail.
func NoError[T any](fn func(T)) Func[T] {
	return func(target T) error {
		fn(target)
		return nil
	}
}

// Apply applies opts to target in order and returns the first error.
// Nil options are skipped, so callers can pass optional ones unconditionally.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}
