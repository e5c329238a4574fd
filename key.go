package slash3

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// Delimiter separates the segments of a key.
	Delimiter = "/"
	// MaxKeyLength is the maximum number of characters in a key.
	MaxKeyLength = 1024
)

// Key is a value object representing a valid S3 object key or key prefix.
// The zero value is the empty key, the root of a bucket.
type Key struct {
	value string
}

// NewKey creates a new Key after validating it. The key must not start with
// the delimiter, must not contain consecutive delimiters and must not be
// longer than MaxKeyLength characters.
func NewKey(raw string) (Key, error) {
	if err := validateKey(raw); err != nil {
		log().Debug("rejected key", "key", raw, "err", err)
		return Key{}, err
	}
	return Key{value: raw}, nil
}

// MustNewKey creates a new Key and panics if the key is invalid.
// Use this only when you are certain the key is valid (e.g., in tests or with hardcoded values).
func MustNewKey(raw string) Key {
	k, err := NewKey(raw)
	if err != nil {
		panic(err)
	}
	return k
}

func validateKey(raw string) error {
	if strings.HasPrefix(raw, Delimiter) {
		return newPathError(ErrMalformedKey, fmt.Sprintf(`S3 keys cannot start with the delimiter "%s" ("%s")`, Delimiter, raw))
	}
	if strings.Contains(raw, Delimiter+Delimiter) {
		return newPathError(ErrMalformedKey, fmt.Sprintf(`S3 keys cannot contain consecutive "%s" delimiters ("%s")`, Delimiter, raw))
	}
	if n := utf8.RuneCountInString(raw); n > MaxKeyLength {
		return newPathError(ErrMalformedKey, fmt.Sprintf(`S3 keys cannot be longer than %d characters ("%s" has %d characters)`, MaxKeyLength, raw, n))
	}
	return nil
}

// Key returns the key text.
func (k Key) Key() string {
	return k.value
}

// String returns the key text.
func (k Key) String() string {
	return k.value
}

// IsEmpty returns true for the bucket root.
func (k Key) IsEmpty() bool {
	return k.value == ""
}

// Equal checks if two keys have the same text.
func (k Key) Equal(other Key) bool {
	return k.value == other.value
}

// EqualString checks if the key text equals s.
func (k Key) EqualString(s string) bool {
	return k.value == s
}

// Leaf returns the final segment of the key. A key ending with the delimiter
// has an empty leaf.
func (k Key) Leaf() string {
	i := strings.LastIndex(k.value, Delimiter)
	return k.value[i+1:]
}

// Append concatenates suffix to the key. No delimiter is inserted, but a
// delimiter present on both sides of the boundary is written only once:
//
//	"private/" + "/clowns.jpg" = "private/clowns.jpg"
//	"private-" + "clowns.jpg"  = "private-clowns.jpg"
func (k Key) Append(suffix string) (Key, error) {
	if k.value == "" {
		return NewKey(suffix)
	}
	if strings.HasSuffix(k.value, Delimiter) && strings.HasPrefix(suffix, Delimiter) {
		suffix = suffix[len(Delimiter):]
	}
	return NewKey(k.value + suffix)
}

// Join adds other as a new segment of the key. Exactly one delimiter is
// written between the two, whether or not either side already has one.
func (k Key) Join(other string) (Key, error) {
	if k.value == "" {
		return NewKey(other)
	}
	base := strings.TrimSuffix(k.value, Delimiter)
	other = strings.TrimPrefix(other, Delimiter)
	return NewKey(base + Delimiter + other)
}

// Parent returns the key with its leaf removed. The result keeps its
// trailing delimiter, or is empty when the key has no directory component.
func (k Key) Parent() Key {
	trimmed := strings.TrimSuffix(k.value, Delimiter)
	i := strings.LastIndex(trimmed, Delimiter)
	parent := Key{}
	if i >= 0 {
		parent = Key{value: trimmed[:i+1]}
	}
	log().Debug("derived key", "key", parent.value, "from", k.value)
	return parent
}

// RelativeTo returns the part of the key below parent.
func (k Key) RelativeTo(parent Key) (string, error) {
	return k.RelativeToString(parent.value)
}

// RelativeToString is RelativeTo for a parent given as text. One trailing
// delimiter on parent is ignored.
func (k Key) RelativeToString(parent string) (string, error) {
	rel, ok := k.relativeTo(parent)
	if !ok {
		return "", newPathError(ErrNotAParent, fmt.Sprintf(`"%s" is not a parent of "%s"`, parent, k.value))
	}
	return rel, nil
}

func (k Key) relativeTo(parent string) (string, bool) {
	parent = strings.TrimSuffix(parent, Delimiter)
	if parent == "" {
		return k.value, true
	}
	if k.value == parent {
		return "", true
	}
	rel, found := strings.CutPrefix(k.value, parent+Delimiter)
	return rel, found
}

// MarshalText implements encoding.TextMarshaler.
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.value), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The text is validated.
func (k *Key) UnmarshalText(text []byte) error {
	parsed, err := NewKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
