package weburl

import (
	"strconv"

	"github.com/rohmanhakim/weburl/pkg/host"
)

// Origin is either a (scheme, host, port) tuple or an opaque origin.
type Origin struct {
	scheme  string
	host    host.Host
	port    uint16
	hasPort bool
	opaque  bool
}

func (o Origin) IsOpaque() bool {
	return o.opaque
}

func (o Origin) Scheme() string {
	return o.scheme
}

func (o Origin) Host() host.Host {
	return o.host
}

func (o Origin) Port() (uint16, bool) {
	return o.port, o.hasPort
}

// String serializes the origin. Opaque origins serialize as "null".
func (o Origin) String() string {
	if o.opaque {
		return "null"
	}
	s := o.scheme + "://" + o.host.String()
	if o.hasPort {
		s += ":" + strconv.Itoa(int(o.port))
	}
	return s
}

// SameOrigin reports whether both origins are the same tuple. An opaque
// origin is only the same as itself, which values cannot express, so opaque
// origins never compare as same origin.
func (o Origin) SameOrigin(other Origin) bool {
	if o.opaque || other.opaque {
		return false
	}
	return o.scheme == other.scheme && o.host == other.host &&
		o.hasPort == other.hasPort && o.port == other.port
}

// OriginValue computes the origin of u. Special schemes other than file
// yield a tuple; blob URLs take the origin of the http(s) URL in their path;
// everything else is opaque.
func (u *URL) OriginValue() Origin {
	switch u.scheme {
	case "blob":
		inner, err := Parse(u.Pathname())
		if err == nil && (inner.scheme == "http" || inner.scheme == "https") {
			return inner.OriginValue()
		}
		return Origin{opaque: true}
	case "ftp", "http", "https", "ws", "wss":
		return Origin{
			scheme:  u.scheme,
			host:    u.host,
			port:    u.port,
			hasPort: u.hasPort,
		}
	default:
		return Origin{opaque: true}
	}
}

// Origin returns the serialized origin of u.
func (u *URL) Origin() string {
	return u.OriginValue().String()
}
