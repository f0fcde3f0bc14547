// Package idn implements the domain-to-ASCII and domain-to-Unicode
// operations used by the URL host parser.
//
// UTS46 processing (mapping, normalization, Punycode and label validation)
// is delegated to golang.org/x/net/idna. The Unicode tables are therefore
// pinned by the golang.org/x/net version in go.mod. Processing is
// non-transitional: deviation characters such as U+00DF are kept and
// Punycode-encoded rather than mapped.
package idn

import (
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/text/unicode/norm"
)

// The URL Standard runs UTS46 with CheckHyphens=false, CheckBidi=true,
// CheckJoiners=true, UseSTD3ASCIIRules=beStrict and VerifyDnsLength=beStrict.
// MapForLookup switches STD3 rules and hyphen checks on, so the options that
// follow it turn them back off. Option order matters.
var (
	lenientProfile = idna.New(
		idna.MapForLookup(),
		idna.BidiRule(),
		idna.Transitional(false),
		idna.StrictDomainName(false),
		idna.CheckHyphens(false),
		idna.CheckJoiners(true),
		idna.VerifyDNSLength(false),
	)

	strictProfile = idna.New(
		idna.MapForLookup(),
		idna.BidiRule(),
		idna.Transitional(false),
		idna.StrictDomainName(true),
		idna.CheckHyphens(false),
		idna.CheckJoiners(true),
		idna.VerifyDNSLength(true),
	)

	displayProfile = idna.New(
		idna.MapForLookup(),
		idna.BidiRule(),
		idna.Transitional(false),
		idna.StrictDomainName(false),
		idna.CheckHyphens(false),
		idna.CheckJoiners(true),
	)
)

const acePrefix = "xn--"

// ToASCII maps domain to its ASCII (Punycode) form. With beStrict the DNS
// length limits (1-63 per label, 253 total) and STD3 rules are enforced.
func ToASCII(domain string, beStrict bool) (string, error) {
	if !beStrict && isASCII(domain) && !hasACELabel(domain) {
		return lowerASCII(domain), nil
	}

	profile := lenientProfile
	if beStrict {
		profile = strictProfile
	}

	// Composing first lets decomposed input (e + U+0301) reach the mapping
	// table in the same form as its precomposed equivalent.
	result, err := profile.ToASCII(norm.NFC.String(domain))
	if err != nil {
		return "", &IDNAError{
			Domain:  domain,
			Message: err.Error(),
			Cause:   ErrCauseProcessingFailed,
		}
	}
	if result == "" {
		return "", &IDNAError{
			Domain: domain,
			Cause:  ErrCauseEmptyResult,
		}
	}
	return result, nil
}

// ToUnicode renders an ASCII domain for display by decoding its Punycode
// labels. Labels that fail to decode are left in their ASCII form, and the
// error describing the first failure is returned alongside the result.
func ToUnicode(domain string) (string, error) {
	if !hasACELabel(domain) {
		return lowerASCII(domain), nil
	}
	result, err := displayProfile.ToUnicode(domain)
	if err != nil {
		return result, &IDNAError{
			Domain:  domain,
			Message: err.Error(),
			Cause:   ErrCauseProcessingFailed,
		}
	}
	return norm.NFC.String(result), nil
}

func hasACELabel(domain string) bool {
	for _, label := range strings.Split(domain, ".") {
		if len(label) >= len(acePrefix) && strings.EqualFold(label[:len(acePrefix)], acePrefix) {
			return true
		}
	}
	return false
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

func lowerASCII(s string) string {
	var needsLower bool
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			needsLower = true
			break
		}
	}
	if !needsLower {
		return s
	}
	b := make([]byte, len(s))
	copy(b, s)
	for i := 0; i < len(b); i++ {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}
