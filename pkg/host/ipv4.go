package host

import (
	"strings"
)

// ipv4NumberCap saturates oversized parts well above 2^32 so that overflow
// is still detected without big-number arithmetic.
const ipv4NumberCap = 1 << 40

// EndsInANumber reports whether the last dot-separated label of an ASCII
// domain (ignoring one trailing empty label) is numeric, which makes the
// whole host an IPv4 candidate.
func EndsInANumber(input string) bool {
	parts := strings.Split(input, ".")
	if parts[len(parts)-1] == "" {
		if len(parts) == 1 {
			return false
		}
		parts = parts[:len(parts)-1]
	}
	last := parts[len(parts)-1]
	if last != "" && strings.Trim(last, "0123456789") == "" {
		return true
	}
	_, _, ok := parseIPv4Number(last)
	return ok
}

// ParseIPv4 parses an IPv4 candidate made of one to four decimal, octal
// ("0" prefix) or hex ("0x" prefix) parts. Every part but the last must fit
// in a byte; the last fills the remaining low-order bytes.
func (p Parser) ParseIPv4(input string) (uint32, error) {
	parts := strings.Split(input, ".")
	if parts[len(parts)-1] == "" {
		p.Report.report(CodeIPv4EmptyPart)
		if len(parts) > 1 {
			parts = parts[:len(parts)-1]
		}
	}

	if len(parts) > 4 {
		p.Report.report(CodeIPv4TooManyParts)
		return 0, ipv4Error(input, "more than four parts")
	}

	numbers := make([]uint64, 0, len(parts))
	for _, part := range parts {
		n, nonDecimal, ok := parseIPv4Number(part)
		if !ok {
			p.Report.report(CodeIPv4NonNumericPart)
			return 0, ipv4Error(input, "non-numeric part "+part)
		}
		if nonDecimal {
			p.Report.report(CodeIPv4NonDecimalPart)
		}
		numbers = append(numbers, n)
	}

	reported := false
	for i, n := range numbers {
		if n <= 255 {
			continue
		}
		if !reported {
			p.Report.report(CodeIPv4OutOfRangePart)
			reported = true
		}
		if i < len(numbers)-1 {
			return 0, ipv4Error(input, "part out of range")
		}
	}

	last := numbers[len(numbers)-1]
	if last >= uint64(1)<<(8*(5-len(numbers))) {
		return 0, ipv4Error(input, "address out of range")
	}

	addr := last
	for i, n := range numbers[:len(numbers)-1] {
		addr += n << (8 * (3 - i))
	}
	return uint32(addr), nil
}

// parseIPv4Number returns the value of one IPv4 part, whether it used a
// non-decimal radix, and whether it parsed at all.
func parseIPv4Number(input string) (uint64, bool, bool) {
	if input == "" {
		return 0, false, false
	}

	radix := uint64(10)
	nonDecimal := false
	switch {
	case len(input) >= 2 && input[0] == '0' && (input[1] == 'x' || input[1] == 'X'):
		input = input[2:]
		radix = 16
		nonDecimal = true
	case len(input) >= 2 && input[0] == '0':
		input = input[1:]
		radix = 8
		nonDecimal = true
	}

	if input == "" {
		return 0, true, true
	}

	var n uint64
	for i := 0; i < len(input); i++ {
		d := digitValue(input[i])
		if d >= radix {
			return 0, false, false
		}
		if n < ipv4NumberCap {
			n = n*radix + d
		}
	}
	return n, nonDecimal, true
}

func digitValue(c byte) uint64 {
	switch {
	case '0' <= c && c <= '9':
		return uint64(c - '0')
	case 'a' <= c && c <= 'f':
		return uint64(c-'a') + 10
	case 'A' <= c && c <= 'F':
		return uint64(c-'A') + 10
	default:
		return 255
	}
}

func ipv4Error(input, message string) *HostError {
	return &HostError{
		Input:   input,
		Message: message,
		Cause:   ErrCauseInvalidIPv4Address,
	}
}
