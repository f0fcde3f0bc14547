package host

// Validation error names reported while parsing hosts. They never change
// the outcome of a parse on their own.
const (
	CodeDomainToASCII              = "domain-to-ASCII"
	CodeDomainInvalidCodePoint     = "domain-invalid-code-point"
	CodeHostInvalidCodePoint       = "host-invalid-code-point"
	CodeInvalidURLUnit             = "invalid-URL-unit"
	CodeIPv4EmptyPart              = "IPv4-empty-part"
	CodeIPv4TooManyParts           = "IPv4-too-many-parts"
	CodeIPv4NonNumericPart         = "IPv4-non-numeric-part"
	CodeIPv4NonDecimalPart         = "IPv4-non-decimal-part"
	CodeIPv4OutOfRangePart         = "IPv4-out-of-range-part"
	CodeIPv6Unclosed               = "IPv6-unclosed"
	CodeIPv6InvalidCompression     = "IPv6-invalid-compression"
	CodeIPv6TooManyPieces          = "IPv6-too-many-pieces"
	CodeIPv6MultipleCompression    = "IPv6-multiple-compression"
	CodeIPv6InvalidCodePoint       = "IPv6-invalid-code-point"
	CodeIPv6TooFewPieces           = "IPv6-too-few-pieces"
	CodeIPv4InIPv6TooManyPieces    = "IPv4-in-IPv6-too-many-pieces"
	CodeIPv4InIPv6InvalidCodePoint = "IPv4-in-IPv6-invalid-code-point"
	CodeIPv4InIPv6OutOfRangePart   = "IPv4-in-IPv6-out-of-range-part"
	CodeIPv4InIPv6TooFewParts      = "IPv4-in-IPv6-too-few-parts"
)

// Reporter receives validation error names. A nil Reporter discards them.
type Reporter func(code string)

func (r Reporter) report(code string) {
	if r != nil {
		r(code)
	}
}
