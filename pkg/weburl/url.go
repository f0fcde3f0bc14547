// Package weburl parses, resolves, mutates and serializes URLs following the
// WHATWG URL Standard.
//
// A URL is produced only by parsing. Components are read through the
// WHATWG-named getters (Href, Protocol, Host, Pathname, ...) or the structured
// accessors (Scheme, HostValue, PathSegments, ...), and changed only through
// the setters, which either apply completely or leave the URL untouched.
package weburl

import (
	"slices"
	"strconv"
	"strings"

	"github.com/rohmanhakim/weburl/pkg/host"
)

// URL is a parsed URL record. The zero value is not a valid URL; use Parse.
// A URL must not be mutated concurrently with other reads or writes.
type URL struct {
	scheme   string
	username string
	password string
	host     host.Host

	port    uint16
	hasPort bool

	// path holds the segments of a hierarchical path. When opaque is set the
	// path is the single string opaquePath instead.
	path       []string
	opaquePath string
	opaque     bool

	query    string
	hasQuery bool

	fragment    string
	hasFragment bool
}

// Clone returns a deep copy of u.
func (u *URL) Clone() *URL {
	c := *u
	c.path = slices.Clone(u.path)
	return &c
}

func (u *URL) Scheme() string {
	return u.scheme
}

// IsSpecial reports whether the scheme is ftp, file, http, https, ws or wss.
func (u *URL) IsSpecial() bool {
	return IsSpecialScheme(u.scheme)
}

// HostValue returns the structured host.
func (u *URL) HostValue() host.Host {
	return u.host
}

// PortNumber returns the port when one is set. A port equal to the scheme's
// default is never stored.
func (u *URL) PortNumber() (uint16, bool) {
	return u.port, u.hasPort
}

// PathSegments returns a copy of the path segments. It reports false when
// the URL has an opaque path.
func (u *URL) PathSegments() ([]string, bool) {
	if u.opaque {
		return nil, false
	}
	return slices.Clone(u.path), true
}

func (u *URL) HasOpaquePath() bool {
	return u.opaque
}

// Query returns the percent-encoded query without the leading '?'. The
// boolean distinguishes an empty query from an absent one.
func (u *URL) Query() (string, bool) {
	return u.query, u.hasQuery
}

// Fragment returns the percent-encoded fragment without the leading '#'.
func (u *URL) Fragment() (string, bool) {
	return u.fragment, u.hasFragment
}

// CannotHaveUsernamePasswordPort reports whether the URL has no host, an
// empty host, or the file scheme.
func (u *URL) CannotHaveUsernamePasswordPort() bool {
	return u.host.IsNoneOrEmpty() || u.scheme == "file"
}

func (u *URL) includesCredentials() bool {
	return u.username != "" || u.password != ""
}

// Href returns the full serialization.
func (u *URL) Href() string {
	return u.serialize(false)
}

func (u *URL) String() string {
	return u.Href()
}

// Protocol returns the scheme followed by ':'.
func (u *URL) Protocol() string {
	return u.scheme + ":"
}

func (u *URL) Username() string {
	return u.username
}

func (u *URL) Password() string {
	return u.password
}

// Host returns the serialized host and, when set, ":" and the port.
func (u *URL) Host() string {
	if u.host.IsNone() {
		return ""
	}
	if !u.hasPort {
		return u.host.String()
	}
	return u.host.String() + ":" + strconv.Itoa(int(u.port))
}

// Hostname returns the serialized host without the port.
func (u *URL) Hostname() string {
	return u.host.String()
}

// HostUnicode returns the hostname with Punycode labels decoded for display.
func (u *URL) HostUnicode() string {
	return u.host.Unicode()
}

func (u *URL) Port() string {
	if !u.hasPort {
		return ""
	}
	return strconv.Itoa(int(u.port))
}

// Pathname returns the serialized path.
func (u *URL) Pathname() string {
	if u.opaque {
		return u.opaquePath
	}
	var b strings.Builder
	for _, segment := range u.path {
		b.WriteByte('/')
		b.WriteString(segment)
	}
	return b.String()
}

// Search returns "?" followed by the query, or "" when the query is absent
// or empty.
func (u *URL) Search() string {
	if u.query == "" {
		return ""
	}
	return "?" + u.query
}

// Hash returns "#" followed by the fragment, or "" when the fragment is
// absent or empty.
func (u *URL) Hash() string {
	if u.fragment == "" {
		return ""
	}
	return "#" + u.fragment
}

func (u *URL) serialize(excludeFragment bool) string {
	var b strings.Builder
	b.Grow(len(u.scheme) + len(u.username) + len(u.password) + len(u.opaquePath) + len(u.query) + len(u.fragment) + 32)

	b.WriteString(u.scheme)
	b.WriteByte(':')

	if !u.host.IsNone() {
		b.WriteString("//")
		if u.includesCredentials() {
			b.WriteString(u.username)
			if u.password != "" {
				b.WriteByte(':')
				b.WriteString(u.password)
			}
			b.WriteByte('@')
		}
		b.WriteString(u.host.String())
		if u.hasPort {
			b.WriteByte(':')
			b.WriteString(strconv.Itoa(int(u.port)))
		}
	} else if !u.opaque && len(u.path) > 1 && u.path[0] == "" {
		// keeps "web+demo:/.//not-a-host/" from reparsing with a host
		b.WriteString("/.")
	}

	b.WriteString(u.Pathname())

	if u.hasQuery {
		b.WriteByte('?')
		b.WriteString(u.query)
	}
	if !excludeFragment && u.hasFragment {
		b.WriteByte('#')
		b.WriteString(u.fragment)
	}
	return b.String()
}

// shortenPath removes the last path segment, except a lone normalized
// Windows drive letter of a file URL.
func (u *URL) shortenPath() {
	if u.scheme == "file" && len(u.path) == 1 && isNormalizedWindowsDriveLetter(u.path[0]) {
		return
	}
	if len(u.path) > 0 {
		u.path = u.path[:len(u.path)-1]
	}
}

func (u *URL) setOpaquePath(p string) {
	u.path = nil
	u.opaquePath = p
	u.opaque = true
}

// stripTrailingSpacesFromOpaquePath runs after the query or fragment of a
// URL with an opaque path is removed, so the path no longer ends in spaces
// that would be trimmed on reparse.
func (u *URL) stripTrailingSpacesFromOpaquePath() {
	if !u.opaque || u.hasFragment || u.hasQuery {
		return
	}
	u.opaquePath = strings.TrimRight(u.opaquePath, " ")
}
