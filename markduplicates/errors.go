package markduplicates

import "fmt"

// MalformedTagError is returned when the molecular tags within one
// duplicate group do not all have the same length.
type MalformedTagError struct {
	Message string
}

func (e MalformedTagError) Error() string {
	return e.Message
}

func newMalformedTagError(a, b string) MalformedTagError {
	return MalformedTagError{fmt.Sprintf("umi lengths do not match: %q (%d) and %q (%d)", a, len(a), b, len(b))}
}

// UnexpectedOrientationError is returned when a read end in a
// duplicate group has an orientation other than FR or RF.
type UnexpectedOrientationError struct {
	Message string
}

func (e UnexpectedOrientationError) Error() string {
	return e.Message
}
