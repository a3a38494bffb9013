package api

// Result holds either a value or an error, never both.
type Result[T any] struct {
	value T
	err   *Error
}

// Ok returns a successful result.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Fail returns a failed result. A nil err is reported as an unknown failure so
// a failed result always carries an error.
func Fail[T any](err *Error) Result[T] {
	if err == nil {
		err = &Error{}
	}
	return Result[T]{err: err}
}

// IsOk reports whether the result holds a value.
func (r Result[T]) IsOk() bool { return r.err == nil }

// Value returns the value, or the zero value of T when the result failed.
func (r Result[T]) Value() T { return r.value }

// Err returns the failure, or nil. The interface is nil on success.
func (r Result[T]) Err() error {
	if r.err == nil {
		return nil
	}
	return r.err
}

// Failure returns the typed failure, or nil.
func (r Result[T]) Failure() *Error { return r.err }

// Unwrap returns the value and the error in the usual Go shape.
func (r Result[T]) Unwrap() (T, error) {
	return r.value, r.Err()
}
