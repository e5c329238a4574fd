package slash3

import (
	"github.com/oklog/ulid/v2"
)

// UniqueLeaf returns a new leaf name made of a ULID followed by suffix.
// ULIDs sort by creation time, so keys generated under one prefix list in
// the order they were made.
func UniqueLeaf(suffix string) string {
	return ulid.Make().String() + suffix
}

// JoinUnique joins a leaf built by UniqueLeaf to the key.
func (k Key) JoinUnique(suffix string) (Key, error) {
	return k.Join(UniqueLeaf(suffix))
}

// JoinUnique joins a leaf built by UniqueLeaf to the key of u.
func (u Uri) JoinUnique(suffix string) (Uri, error) {
	return u.withKey(u.key.JoinUnique(suffix))
}
