// Package host parses and serializes the host component of a URL: domains,
// IPv4 and IPv6 addresses, and the opaque hosts of non-special schemes.
package host

import (
	"strconv"
	"strings"

	"github.com/rohmanhakim/weburl/pkg/idn"
)

type Kind uint8

const (
	KindNone Kind = iota
	KindEmpty
	KindDomain
	KindIPv4
	KindIPv6
	KindOpaque
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindEmpty:
		return "empty"
	case KindDomain:
		return "domain"
	case KindIPv4:
		return "ipv4"
	case KindIPv6:
		return "ipv6"
	case KindOpaque:
		return "opaque"
	default:
		return "unknown"
	}
}

// Host is an immutable tagged value. The zero Host is KindNone, and Host
// values are comparable with ==.
type Host struct {
	kind Kind
	text string
	ipv4 uint32
	ipv6 [8]uint16
}

// None returns the absent host.
func None() Host {
	return Host{}
}

// Empty returns the empty host, used by file URLs without a host.
func Empty() Host {
	return Host{kind: KindEmpty}
}

// NewDomain wraps an already validated ASCII domain.
func NewDomain(domain string) Host {
	return Host{kind: KindDomain, text: domain}
}

// NewOpaque wraps an already percent-encoded opaque host.
func NewOpaque(opaque string) Host {
	return Host{kind: KindOpaque, text: opaque}
}

func NewIPv4(addr uint32) Host {
	return Host{kind: KindIPv4, ipv4: addr}
}

func NewIPv6(addr [8]uint16) Host {
	return Host{kind: KindIPv6, ipv6: addr}
}

func (h Host) Kind() Kind {
	return h.kind
}

// IsNone reports whether the host is absent.
func (h Host) IsNone() bool {
	return h.kind == KindNone
}

// IsNoneOrEmpty reports whether the host is absent or the empty host.
func (h Host) IsNoneOrEmpty() bool {
	return h.kind == KindNone || h.kind == KindEmpty
}

// Domain returns the ASCII domain when h is a domain.
func (h Host) Domain() (string, bool) {
	return h.text, h.kind == KindDomain
}

// Opaque returns the percent-encoded opaque host when h is opaque.
func (h Host) Opaque() (string, bool) {
	return h.text, h.kind == KindOpaque
}

func (h Host) IPv4() (uint32, bool) {
	return h.ipv4, h.kind == KindIPv4
}

func (h Host) IPv6() ([8]uint16, bool) {
	return h.ipv6, h.kind == KindIPv6
}

// String returns the host serialization. None and empty hosts serialize to
// the empty string; IPv6 addresses are bracketed.
func (h Host) String() string {
	switch h.kind {
	case KindDomain, KindOpaque:
		return h.text
	case KindIPv4:
		return serializeIPv4(h.ipv4)
	case KindIPv6:
		return "[" + serializeIPv6(h.ipv6) + "]"
	default:
		return ""
	}
}

// Unicode returns the host serialization with Punycode domain labels decoded
// for display. Labels that fail to decode are kept in ASCII.
func (h Host) Unicode() string {
	if h.kind != KindDomain {
		return h.String()
	}
	u, _ := idn.ToUnicode(h.text)
	return u
}

func serializeIPv4(addr uint32) string {
	var b strings.Builder
	b.Grow(15)
	for i := 3; i >= 0; i-- {
		b.WriteString(strconv.FormatUint(uint64(addr>>(8*i)&0xFF), 10))
		if i != 0 {
			b.WriteByte('.')
		}
	}
	return b.String()
}

// serializeIPv6 writes the eight pieces in lowercase hex, replacing the first
// longest run of two or more zero pieces with "::".
func serializeIPv6(addr [8]uint16) string {
	compress := longestZeroRun(addr)
	var b strings.Builder
	b.Grow(39)
	ignore0 := false
	for i := 0; i < 8; i++ {
		if ignore0 && addr[i] == 0 {
			continue
		}
		ignore0 = false
		if compress == i {
			if i == 0 {
				b.WriteString("::")
			} else {
				b.WriteByte(':')
			}
			ignore0 = true
			continue
		}
		b.WriteString(strconv.FormatUint(uint64(addr[i]), 16))
		if i != 7 {
			b.WriteByte(':')
		}
	}
	return b.String()
}

func longestZeroRun(addr [8]uint16) int {
	best, bestLen := -1, 1
	for i := 0; i < 8; {
		if addr[i] != 0 {
			i++
			continue
		}
		start := i
		for i < 8 && addr[i] == 0 {
			i++
		}
		if i-start > bestLen {
			best, bestLen = start, i-start
		}
	}
	return best
}
