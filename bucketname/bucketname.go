// Package bucketname checks bucket names against the AWS S3 general purpose
// bucket naming rules. Uri only requires a non-empty bucket, callers that
// create buckets or want early rejection use this package on top.
package bucketname

import (
	"errors"
	"fmt"
	"net"
	"regexp"
	"strings"
)

const (
	MinLength = 3
	MaxLength = 63
)

// ErrInvalidBucketName is returned when a bucket name violates S3 naming rules
var ErrInvalidBucketName = errors.New("invalid bucket name")

var (
	// must start and end with lowercase letter or number
	nameRegex  = regexp.MustCompile(`^[a-z0-9][a-z0-9.-]*[a-z0-9]$`)
	labelRegex = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

	reservedPrefixes = []string{"xn--", "sthree-", "amzn-s3-demo-"}
	reservedSuffixes = []string{"-s3alias", "--ol-s3", ".mrap", "--x-s3", "--table-s3"}
)

// Name is a bucket name that passed Validate.
type Name struct {
	value string
}

// New validates name and returns it as a Name.
func New(name string) (Name, error) {
	if err := Validate(name); err != nil {
		return Name{}, err
	}
	return Name{value: name}, nil
}

// MustNew is New and panics if the name is invalid.
func MustNew(name string) Name {
	n, err := New(name)
	if err != nil {
		panic(err)
	}
	return n
}

func (n Name) String() string {
	return n.value
}

// Validate checks name against the S3 naming rules. The returned error wraps
// ErrInvalidBucketName.
func Validate(name string) error {
	if err := validate(name); err != nil {
		return fmt.Errorf("%w %q: %v", ErrInvalidBucketName, name, err)
	}
	return nil
}

func validate(name string) error {
	if len(name) < MinLength || len(name) > MaxLength {
		return fmt.Errorf("bucket name must be between %d and %d characters long", MinLength, MaxLength)
	}
	if !nameRegex.MatchString(name) {
		return errors.New("bucket name must contain only lowercase letters, numbers, dots, and hyphens, and must start and end with a letter or number")
	}
	if net.ParseIP(name) != nil {
		return errors.New("bucket name must not be formatted as an IP address")
	}
	for _, prefix := range reservedPrefixes {
		if strings.HasPrefix(name, prefix) {
			return fmt.Errorf("bucket name must not start with '%s'", prefix)
		}
	}
	for _, suffix := range reservedSuffixes {
		if strings.HasSuffix(name, suffix) {
			return fmt.Errorf("bucket name must not end with '%s'", suffix)
		}
	}
	for _, label := range strings.Split(name, ".") {
		if label == "" {
			return errors.New("bucket name must not contain consecutive dots")
		}
		if !labelRegex.MatchString(label) {
			return errors.New("each label must start and end with a lowercase letter or number")
		}
	}
	return nil
}
