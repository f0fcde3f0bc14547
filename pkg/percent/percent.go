package percent

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

const upperhex = "0123456789ABCDEF"

// EncodeSet is a set of ASCII bytes that must be written as %XX in a given
// structural position of a URL. Bytes outside the ASCII range are always
// members of every set.
type EncodeSet struct {
	lo uint64 // 0x00..0x3F
	hi uint64 // 0x40..0x7F
}

// Contains reports whether b must be percent-encoded under s.
func (s EncodeSet) Contains(b byte) bool {
	switch {
	case b >= 0x80:
		return true
	case b >= 0x40:
		return s.hi&(1<<(b-0x40)) != 0
	default:
		return s.lo&(1<<b) != 0
	}
}

// With returns a copy of s extended with every byte of extra.
func (s EncodeSet) With(extra string) EncodeSet {
	for i := 0; i < len(extra); i++ {
		b := extra[i]
		switch {
		case b >= 0x80:
		case b >= 0x40:
			s.hi |= 1 << (b - 0x40)
		default:
			s.lo |= 1 << b
		}
	}
	return s
}

func c0ControlSet() EncodeSet {
	var s EncodeSet
	for b := byte(0); b < 0x20; b++ {
		s.lo |= 1 << b
	}
	s.hi |= 1 << (0x7F - 0x40)
	return s
}

// The named encode sets of the URL Standard. Path, Userinfo, Component and
// FormURLEncoded each build on the one before; SpecialQuery extends Query.
var (
	C0Control      = c0ControlSet()
	Fragment       = C0Control.With(" \"<>`")
	Query          = C0Control.With(" \"#<>")
	SpecialQuery   = Query.With("'")
	Path           = Query.With("?`{}")
	Userinfo       = Path.With("/:;=@[\\]^|")
	Component      = Userinfo.With("$%&+,")
	FormURLEncoded = Component.With("!'()~")
)

// Encode returns s with every byte contained in set written as %XX.
func Encode(s string, set EncodeSet) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if set.Contains(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 2*n)
	WriteEncoded(&b, s, set)
	return b.String()
}

// WriteEncoded appends the encoding of s under set to b.
func WriteEncoded(b *strings.Builder, s string, set EncodeSet) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if set.Contains(c) {
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&0x0F])
			continue
		}
		b.WriteByte(c)
	}
}

// WriteEncodedRune appends the UTF-8 encoding of r, escaping the bytes
// contained in set.
func WriteEncodedRune(b *strings.Builder, r rune, set EncodeSet) {
	if r < 0x80 {
		c := byte(r)
		if set.Contains(c) {
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&0x0F])
			return
		}
		b.WriteByte(c)
		return
	}
	WriteEncoded(b, string(r), set)
}

// EncodeForm encodes s for an application/x-www-form-urlencoded payload:
// space becomes '+' and every other member of FormURLEncoded becomes %XX.
func EncodeForm(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ' ':
			b.WriteByte('+')
		case FormURLEncoded.Contains(c):
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&0x0F])
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Decode percent-decodes s. A '%' that is not followed by two hex digits is
// kept as is, so decoding never fails.
func Decode(s string) []byte {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '%' && ValidEscapeAt(s, i) {
			out = append(out, unhex(s[i+1])<<4|unhex(s[i+2]))
			i += 2
			continue
		}
		out = append(out, c)
	}
	return out
}

// DecodeString is Decode returning a string.
func DecodeString(s string) string {
	if strings.IndexByte(s, '%') < 0 {
		return s
	}
	return string(Decode(s))
}

// ValidEscapeAt reports whether s[i] starts a %XX triplet.
func ValidEscapeAt(s string, i int) bool {
	return i+2 < len(s) && s[i] == '%' && IsHex(s[i+1]) && IsHex(s[i+2])
}

// InvalidEscapes returns the offsets of every '%' in s that does not start
// a valid %XX triplet.
func InvalidEscapes(s string) []int {
	var offsets []int
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && !ValidEscapeAt(s, i) {
			offsets = append(offsets, i)
		}
	}
	return offsets
}

// IsHex reports whether c is an ASCII hex digit.
func IsHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

// DecodeUTF8 percent-decodes s and decodes the resulting bytes as UTF-8,
// replacing invalid sequences with U+FFFD.
func DecodeUTF8(s string) string {
	return ToValidUTF8(Decode(s))
}

// ToValidUTF8 decodes b as UTF-8 without stripping a byte order mark,
// replacing invalid sequences with U+FFFD.
func ToValidUTF8(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	out, err := unicode.UTF8.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "\uFFFD")
	}
	return string(out)
}

// IsURLCodePoint reports whether r may appear unescaped in a URL: ASCII
// alphanumerics, a fixed set of ASCII punctuation, and non-ASCII code points
// from U+00A0 that are neither surrogates nor noncharacters.
func IsURLCodePoint(r rune) bool {
	switch {
	case r < 0x80:
		return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9') ||
			strings.ContainsRune("!$&'()*+,-./:;=?@_~", r)
	case r < 0xA0, r > 0x10FFFD:
		return false
	case 0xD800 <= r && r <= 0xDFFF:
		return false
	case 0xFDD0 <= r && r <= 0xFDEF:
		return false
	case r&0xFFFE == 0xFFFE:
		return false
	}
	return true
}
