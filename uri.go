package slash3

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jdillenkofer/slash3/bucketname"
)

// Scheme is the scheme of every Uri.
const Scheme = "s3"

var uriRegex = regexp.MustCompile(`(?s)^` + Scheme + `://([^/]+)(?:/(.*))?$`)

// Uri is a value object representing an S3 URI of the form s3://bucket/key.
type Uri struct {
	bucket string
	key    Key
}

// ParseUri creates a new Uri from its textual form. The bucket must be
// present and the part after it must be a valid Key.
func ParseUri(raw string) (Uri, error) {
	match := uriRegex.FindStringSubmatch(raw)
	if match == nil {
		err := newPathError(ErrMalformedUri, fmt.Sprintf(`"%s" is not an S3 URI`, raw))
		log().Debug("rejected uri", "uri", raw, "err", err)
		return Uri{}, err
	}
	key, err := NewKey(match[2])
	if err != nil {
		return Uri{}, err
	}
	return Uri{bucket: match[1], key: key}, nil
}

// MustParseUri creates a new Uri and panics if raw is invalid.
// Use this only when you are certain the uri is valid (e.g., in tests or with hardcoded values).
func MustParseUri(raw string) Uri {
	u, err := ParseUri(raw)
	if err != nil {
		panic(err)
	}
	return u
}

// ToUri creates a new Uri from a bucket and a key. An empty key addresses
// the root of the bucket. The bucket must not be empty or contain the
// delimiter.
func ToUri(bucket string, key string) (Uri, error) {
	if bucket == "" || strings.Contains(bucket, Delimiter) {
		raw := Scheme + "://" + bucket + Delimiter + key
		err := newPathError(ErrMalformedUri, fmt.Sprintf(`"%s" is not an S3 URI`, raw))
		log().Debug("rejected bucket", "bucket", bucket, "err", err)
		return Uri{}, err
	}
	k, err := NewKey(key)
	if err != nil {
		return Uri{}, err
	}
	return Uri{bucket: bucket, key: k}, nil
}

// MustToUri is ToUri and panics if the parts are invalid.
func MustToUri(bucket string, key string) Uri {
	u, err := ToUri(bucket, key)
	if err != nil {
		panic(err)
	}
	return u
}

func (u Uri) withKey(key Key, err error) (Uri, error) {
	if err != nil {
		return Uri{}, err
	}
	derived := Uri{bucket: u.bucket, key: key}
	log().Debug("derived uri", "uri", derived.Uri(), "from", u.Uri())
	return derived, nil
}

// Scheme returns the scheme, always "s3".
func (u Uri) Scheme() string {
	return Scheme
}

// Bucket returns the bucket name.
func (u Uri) Bucket() string {
	return u.bucket
}

// Key returns the key within the bucket.
func (u Uri) Key() Key {
	return u.key
}

// Leaf returns the final segment of the key.
func (u Uri) Leaf() string {
	return u.key.Leaf()
}

// Uri returns the canonical form s3://bucket/key. The root of a bucket is
// written with a trailing delimiter.
func (u Uri) Uri() string {
	return Scheme + "://" + u.bucket + Delimiter + u.key.value
}

// String returns the canonical form, see Uri.
func (u Uri) String() string {
	return u.Uri()
}

// IsEmpty returns true if the Uri is the zero value.
func (u Uri) IsEmpty() bool {
	return u.bucket == ""
}

// Equal checks if two URIs address the same bucket and key.
func (u Uri) Equal(other Uri) bool {
	return u.bucket == other.bucket && u.key.Equal(other.key)
}

// EqualString checks if s parses to a Uri equal to u. Text that is not a
// valid URI is never equal.
func (u Uri) EqualString(s string) bool {
	other, err := ParseUri(s)
	if err != nil {
		return false
	}
	return u.Equal(other)
}

// Append returns a new Uri in the same bucket with suffix appended to the
// key as described by Key.Append.
func (u Uri) Append(suffix string) (Uri, error) {
	return u.withKey(u.key.Append(suffix))
}

// Join returns a new Uri in the same bucket with suffix joined to the key
// as described by Key.Join.
func (u Uri) Join(suffix string) (Uri, error) {
	return u.withKey(u.key.Join(suffix))
}

// Parent returns the Uri of the directory containing u. The parent of a
// bucket root is the bucket root.
func (u Uri) Parent() Uri {
	parent := Uri{bucket: u.bucket, key: u.key.Parent()}
	log().Debug("derived uri", "uri", parent.Uri(), "from", u.Uri())
	return parent
}

// RelativeTo returns the key of u relative to parent. Both URIs must
// describe the same bucket.
func (u Uri) RelativeTo(parent Uri) (string, error) {
	if u.bucket != parent.bucket {
		return "", newPathError(ErrCrossBucket, fmt.Sprintf(
			`There is no relative path from "%s" to "%s" because these URIs describe different buckets`,
			parent.Uri(), u.Uri(),
		))
	}
	rel, err := u.key.RelativeTo(parent.key)
	if errors.Is(err, ErrNotAParent) {
		return "", newPathError(ErrNotAParent, fmt.Sprintf(`"%s" is not a parent of "%s"`, parent.Uri(), u.Uri()))
	}
	return rel, err
}

// RelativeToString is RelativeTo for a parent given as text.
func (u Uri) RelativeToString(parent string) (string, error) {
	p, err := ParseUri(parent)
	if err != nil {
		return "", err
	}
	return u.RelativeTo(p)
}

// MarshalText implements encoding.TextMarshaler. The zero Uri marshals to
// empty text.
func (u Uri) MarshalText() ([]byte, error) {
	if u.IsEmpty() {
		return []byte{}, nil
	}
	return []byte(u.Uri()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Empty text yields the
// zero Uri, anything else must parse.
func (u *Uri) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*u = Uri{}
		return nil
	}
	parsed, err := ParseUri(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// ValidateBucket checks the bucket against the full S3 bucket naming rules,
// which ParseUri does not enforce.
func (u Uri) ValidateBucket() error {
	return bucketname.Validate(u.bucket)
}
