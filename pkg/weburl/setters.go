package weburl

import (
	"strings"

	"github.com/rohmanhakim/weburl/pkg/percent"
)

// Setters build a candidate record from a clone of u and swap it in only
// when the candidate parsed without a fatal error. On error u is unchanged.

// SetHref replaces the whole URL with the result of parsing href.
func (u *URL) SetHref(href string) error {
	parsed, err := Parse(href)
	if err != nil {
		return err
	}
	*u = *parsed
	return nil
}

// SetScheme sets the scheme. A trailing ':' and anything after it is
// ignored. Switching between special and non-special schemes is rejected.
func (u *URL) SetScheme(scheme string) error {
	return u.apply(scheme+":", StateSchemeStart, nil)
}

func (u *URL) SetUsername(username string) error {
	if u.CannotHaveUsernamePasswordPort() {
		return rejected(u, "URL cannot have a username")
	}
	u.username = percent.Encode(username, percent.Userinfo)
	return nil
}

func (u *URL) SetPassword(password string) error {
	if u.CannotHaveUsernamePasswordPort() {
		return rejected(u, "URL cannot have a password")
	}
	u.password = percent.Encode(password, percent.Userinfo)
	return nil
}

// SetHost sets the host and, when value carries one, the port.
func (u *URL) SetHost(value string) error {
	if u.opaque {
		return rejected(u, "URL with an opaque path cannot have a host")
	}
	return u.apply(value, StateHost, nil)
}

// SetHostname sets the host, rejecting values that carry a port.
func (u *URL) SetHostname(value string) error {
	if u.opaque {
		return rejected(u, "URL with an opaque path cannot have a host")
	}
	return u.apply(value, StateHostname, nil)
}

// SetPort sets the port from the leading digits of value. The empty string
// removes the port.
func (u *URL) SetPort(value string) error {
	if u.CannotHaveUsernamePasswordPort() {
		return rejected(u, "URL cannot have a port")
	}
	if value == "" {
		u.port, u.hasPort = 0, false
		return nil
	}
	return u.apply(value, StatePort, nil)
}

func (u *URL) SetPathname(value string) error {
	if u.opaque {
		return rejected(u, "opaque path cannot be replaced")
	}
	return u.apply(value, StatePathStart, func(c *URL) {
		c.path = nil
	})
}

// SetQuery sets the query. A single leading '?' is ignored and the empty
// string removes the query.
func (u *URL) SetQuery(value string) error {
	if value == "" {
		u.query, u.hasQuery = "", false
		u.stripTrailingSpacesFromOpaquePath()
		return nil
	}
	return u.apply(strings.TrimPrefix(value, "?"), StateQuery, func(c *URL) {
		c.query, c.hasQuery = "", true
	})
}

// SetFragment sets the fragment. A single leading '#' is ignored and the
// empty string removes the fragment.
func (u *URL) SetFragment(value string) error {
	if value == "" {
		u.fragment, u.hasFragment = "", false
		u.stripTrailingSpacesFromOpaquePath()
		return nil
	}
	return u.apply(strings.TrimPrefix(value, "#"), StateFragment, func(c *URL) {
		c.fragment, c.hasFragment = "", true
	})
}

func (u *URL) apply(input string, state State, prepare func(*URL)) error {
	candidate := u.Clone()
	if prepare != nil {
		prepare(candidate)
	}
	if err := (Parser{}).run(input, nil, candidate, state); err != nil {
		return err
	}
	*u = *candidate
	return nil
}

func rejected(u *URL, message string) error {
	return &ParseError{
		Input:   u.Href(),
		Message: message,
		Cause:   ErrCauseSetterRejected,
	}
}

// The With variants leave u untouched and return the updated copy.

func (u *URL) WithScheme(scheme string) (*URL, error) {
	return u.with(func(c *URL) error { return c.SetScheme(scheme) })
}

func (u *URL) WithUsername(username string) (*URL, error) {
	return u.with(func(c *URL) error { return c.SetUsername(username) })
}

func (u *URL) WithPassword(password string) (*URL, error) {
	return u.with(func(c *URL) error { return c.SetPassword(password) })
}

func (u *URL) WithHost(value string) (*URL, error) {
	return u.with(func(c *URL) error { return c.SetHost(value) })
}

func (u *URL) WithHostname(value string) (*URL, error) {
	return u.with(func(c *URL) error { return c.SetHostname(value) })
}

func (u *URL) WithPort(value string) (*URL, error) {
	return u.with(func(c *URL) error { return c.SetPort(value) })
}

func (u *URL) WithPathname(value string) (*URL, error) {
	return u.with(func(c *URL) error { return c.SetPathname(value) })
}

func (u *URL) WithQuery(value string) (*URL, error) {
	return u.with(func(c *URL) error { return c.SetQuery(value) })
}

func (u *URL) WithFragment(value string) (*URL, error) {
	return u.with(func(c *URL) error { return c.SetFragment(value) })
}

func (u *URL) with(set func(*URL) error) (*URL, error) {
	c := u.Clone()
	if err := set(c); err != nil {
		return nil, err
	}
	return c, nil
}
