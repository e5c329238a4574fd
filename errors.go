package slash3

import "errors"

var (
	// ErrMalformedKey is returned when a key violates the S3 key rules.
	ErrMalformedKey = errors.New("malformed S3 key")
	// ErrMalformedUri is returned when a string is not shaped like s3://bucket[/key].
	ErrMalformedUri = errors.New("malformed S3 URI")
	// ErrNotAParent is returned by RelativeTo when the parent is not a prefix.
	ErrNotAParent = errors.New("not a parent")
	// ErrCrossBucket is returned by Uri.RelativeTo when the buckets differ.
	ErrCrossBucket = errors.New("different buckets")
)

// pathError carries a user facing message while still matching its
// sentinel through errors.Is.
type pathError struct {
	kind error
	msg  string
}

func (e *pathError) Error() string {
	return e.msg
}

func (e *pathError) Unwrap() error {
	return e.kind
}

func newPathError(kind error, msg string) error {
	return &pathError{kind: kind, msg: msg}
}
