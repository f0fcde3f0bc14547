package weburl

import (
	"strings"

	"github.com/rohmanhakim/weburl/pkg/hashutil"
)

// Equality, ordering and hashing are all defined over Href.

// Equal reports whether u and other serialize identically.
func (u *URL) Equal(other *URL) bool {
	if u == nil || other == nil {
		return u == other
	}
	return u.Href() == other.Href()
}

// EqualExcludingFragment compares the serializations without fragments.
func (u *URL) EqualExcludingFragment(other *URL) bool {
	if u == nil || other == nil {
		return u == other
	}
	return u.serialize(true) == other.serialize(true)
}

// Compare orders URLs lexicographically by Href.
func (u *URL) Compare(other *URL) int {
	return strings.Compare(u.Href(), other.Href())
}

// Fingerprint hashes Href with the given algorithm.
func (u *URL) Fingerprint(algo hashutil.HashAlgo) (string, error) {
	return hashutil.HashString(u.Href(), algo)
}
