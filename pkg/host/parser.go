package host

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rohmanhakim/weburl/pkg/idn"
	"github.com/rohmanhakim/weburl/pkg/percent"
)

/*
Parser turns the host text found between the authority delimiters of a URL
into a Host.

Classification order:
  - "[...]"             -> IPv6, strictly
  - non-special scheme  -> opaque host, percent-encoded with the C0 control set
  - special scheme      -> percent-decode, domain-to-ASCII, then IPv4 when the
    result ends in a number, otherwise a domain

Every rejection is fatal for the enclosing URL parse. Recoverable oddities
(non-decimal IPv4 parts, stray '%') go to Report.
*/
type Parser struct {
	// BeStrict enforces DNS length limits and STD3 rules during
	// domain-to-ASCII.
	BeStrict bool
	Report   Reporter
}

// Parse parses input with a default Parser.
func Parse(input string, isSpecial bool) (Host, error) {
	return Parser{}.Parse(input, isSpecial)
}

func (p Parser) Parse(input string, isSpecial bool) (Host, error) {
	if strings.HasPrefix(input, "[") {
		if len(input) < 2 || !strings.HasSuffix(input, "]") {
			p.Report.report(CodeIPv6Unclosed)
			return Host{}, &HostError{
				Input:   input,
				Message: "missing closing bracket",
				Cause:   ErrCauseInvalidIPv6Address,
			}
		}
		addr, err := p.parseIPv6(input[1 : len(input)-1])
		if err != nil {
			return Host{}, err
		}
		return NewIPv6(addr), nil
	}

	if !isSpecial {
		return p.parseOpaque(input)
	}

	if input == "" {
		return Host{}, &HostError{
			Input:   input,
			Message: "empty host",
			Cause:   ErrCauseInvalidHost,
		}
	}

	domain := percent.DecodeUTF8(input)
	asciiDomain, err := idn.ToASCII(domain, p.BeStrict)
	if err != nil {
		p.Report.report(CodeDomainToASCII)
		return Host{}, &HostError{
			Input:   input,
			Message: err.Error(),
			Cause:   ErrCauseIDNAFailure,
			Err:     err,
		}
	}

	if i := strings.IndexFunc(asciiDomain, IsForbiddenDomainCodePoint); i >= 0 {
		p.Report.report(CodeDomainInvalidCodePoint)
		r, _ := utf8.DecodeRuneInString(asciiDomain[i:])
		return Host{}, &HostError{
			Input:   input,
			Message: "forbidden domain code point " + quoteRune(r),
			Cause:   ErrCauseInvalidHost,
		}
	}

	if EndsInANumber(asciiDomain) {
		addr, err := p.ParseIPv4(asciiDomain)
		if err != nil {
			return Host{}, err
		}
		return NewIPv4(addr), nil
	}

	return NewDomain(asciiDomain), nil
}

func (p Parser) parseOpaque(input string) (Host, error) {
	if input == "" {
		return Empty(), nil
	}
	if i := strings.IndexFunc(input, IsForbiddenHostCodePoint); i >= 0 {
		p.Report.report(CodeHostInvalidCodePoint)
		r, _ := utf8.DecodeRuneInString(input[i:])
		return Host{}, &HostError{
			Input:   input,
			Message: "forbidden host code point " + quoteRune(r),
			Cause:   ErrCauseInvalidHost,
		}
	}

	for i, r := range input {
		if r == '%' {
			if !percent.ValidEscapeAt(input, i) {
				p.Report.report(CodeInvalidURLUnit)
			}
			continue
		}
		if !percent.IsURLCodePoint(r) {
			p.Report.report(CodeInvalidURLUnit)
		}
	}

	return NewOpaque(percent.Encode(input, percent.C0Control)), nil
}

// IsForbiddenHostCodePoint reports whether r may never appear in a host.
func IsForbiddenHostCodePoint(r rune) bool {
	switch r {
	case 0x00, '\t', '\n', '\r', ' ', '#', '/', ':', '<', '>', '?', '@', '[', '\\', ']', '^', '|':
		return true
	}
	return false
}

// IsForbiddenDomainCodePoint reports whether r may never appear in the ASCII
// form of a domain: the forbidden host code points plus C0 controls, '%' and
// U+007F.
func IsForbiddenDomainCodePoint(r rune) bool {
	return IsForbiddenHostCodePoint(r) || r <= 0x1F || r == '%' || r == 0x7F
}

func quoteRune(r rune) string {
	return fmt.Sprintf("U+%04X", r)
}
