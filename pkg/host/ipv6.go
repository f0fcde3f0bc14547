package host

const eof = -1

// ipv6Input is a byte cursor that yields eof past the end.
type ipv6Input struct {
	s       string
	pointer int
}

func (in *ipv6Input) c() int {
	if in.pointer >= len(in.s) {
		return eof
	}
	return int(in.s[in.pointer])
}

func (in *ipv6Input) peek(n int) int {
	if in.pointer+n >= len(in.s) {
		return eof
	}
	return int(in.s[in.pointer+n])
}

// parseIPv6 parses the text between the brackets of an IPv6 host: up to
// eight 16-bit hex pieces, at most one "::" compression, and an optional
// trailing dotted-quad IPv4 address filling the last two pieces.
func (p Parser) parseIPv6(s string) ([8]uint16, error) {
	var address [8]uint16
	pieceIndex := 0
	compress := -1
	in := &ipv6Input{s: s}

	fail := func(code, message string) ([8]uint16, error) {
		p.Report.report(code)
		return [8]uint16{}, &HostError{
			Input:   "[" + s + "]",
			Message: message,
			Cause:   ErrCauseInvalidIPv6Address,
		}
	}

	if in.c() == ':' {
		if in.peek(1) != ':' {
			return fail(CodeIPv6InvalidCompression, "leading single colon")
		}
		in.pointer += 2
		pieceIndex++
		compress = pieceIndex
	}

	for in.c() != eof {
		if pieceIndex == 8 {
			return fail(CodeIPv6TooManyPieces, "more than eight pieces")
		}

		if in.c() == ':' {
			if compress != -1 {
				return fail(CodeIPv6MultipleCompression, "multiple compressions")
			}
			in.pointer++
			pieceIndex++
			compress = pieceIndex
			continue
		}

		value, length := 0, 0
		for length < 4 && isHexDigit(in.c()) {
			value = value*0x10 + int(digitValue(byte(in.c())))
			in.pointer++
			length++
		}

		if in.c() == '.' {
			if length == 0 {
				return fail(CodeIPv4InIPv6InvalidCodePoint, "empty IPv4 part")
			}
			in.pointer -= length
			if pieceIndex > 6 {
				return fail(CodeIPv4InIPv6TooManyPieces, "no room for embedded IPv4")
			}

			numbersSeen := 0
			for in.c() != eof {
				ipv4Piece := -1
				if numbersSeen > 0 {
					if in.c() == '.' && numbersSeen < 4 {
						in.pointer++
					} else {
						return fail(CodeIPv4InIPv6InvalidCodePoint, "unexpected code point in embedded IPv4")
					}
				}
				if !isDigit(in.c()) {
					return fail(CodeIPv4InIPv6InvalidCodePoint, "non-digit in embedded IPv4")
				}
				for isDigit(in.c()) {
					number := in.c() - '0'
					switch ipv4Piece {
					case -1:
						ipv4Piece = number
					case 0:
						return fail(CodeIPv4InIPv6InvalidCodePoint, "leading zero in embedded IPv4")
					default:
						ipv4Piece = ipv4Piece*10 + number
					}
					if ipv4Piece > 255 {
						return fail(CodeIPv4InIPv6OutOfRangePart, "embedded IPv4 part out of range")
					}
					in.pointer++
				}
				address[pieceIndex] = address[pieceIndex]*0x100 + uint16(ipv4Piece)
				numbersSeen++
				if numbersSeen == 2 || numbersSeen == 4 {
					pieceIndex++
				}
			}
			if numbersSeen != 4 {
				return fail(CodeIPv4InIPv6TooFewParts, "embedded IPv4 has fewer than four parts")
			}
			break
		} else if in.c() == ':' {
			in.pointer++
			if in.c() == eof {
				return fail(CodeIPv6InvalidCodePoint, "trailing colon")
			}
		} else if in.c() != eof {
			return fail(CodeIPv6InvalidCodePoint, "unexpected code point")
		}

		address[pieceIndex] = uint16(value)
		pieceIndex++
	}

	if compress != -1 {
		swaps := pieceIndex - compress
		pieceIndex = 7
		for pieceIndex != 0 && swaps > 0 {
			address[pieceIndex], address[compress+swaps-1] = address[compress+swaps-1], address[pieceIndex]
			pieceIndex--
			swaps--
		}
	} else if pieceIndex != 8 {
		return fail(CodeIPv6TooFewPieces, "fewer than eight pieces")
	}

	return address, nil
}

func isHexDigit(c int) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func isDigit(c int) bool {
	return '0' <= c && c <= '9'
}
