// Package urlutil derives deduplication keys from parsed URLs.
package urlutil

import (
	"github.com/rohmanhakim/weburl/pkg/hashutil"
	"github.com/rohmanhakim/weburl/pkg/weburl"
)

// Canonicalize maps equivalent spellings of a URL to a single representative.
// Scheme and host case, default ports and dot segments are already
// normalized by the parser; on top of that:
//   - Fragments are removed
//   - Path is cleaned (trailing slashes removed, except for root "/")
//   - Query pairs are sorted by name and re-encoded; an empty query is removed
//
// Properties:
//   - Pure: the input is never modified
//   - Idempotent: Canonicalize(Canonicalize(u)) == Canonicalize(u)
func Canonicalize(source *weburl.URL) *weburl.URL {
	canonical := source.Clone()

	// clearing the fragment cannot fail
	_ = canonical.SetFragment("")

	if segments, ok := canonical.PathSegments(); ok && len(segments) > 1 {
		if cleaned := stripTrailingSlash(canonical.Pathname()); cleaned != canonical.Pathname() {
			_ = canonical.SetPathname(cleaned)
		}
	}

	params := canonical.SearchParams()
	params.Sort()
	canonical.SetSearchParams(params)

	return canonical
}

// Key fingerprints the canonical form of u.
func Key(u *weburl.URL, algo hashutil.HashAlgo) (string, error) {
	return Canonicalize(u).Fingerprint(algo)
}

// stripTrailingSlash removes trailing slashes from a path.
func stripTrailingSlash(path string) string {
	for len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}
	return path
}
