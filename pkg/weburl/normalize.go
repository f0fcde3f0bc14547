package weburl

import (
	"strings"
	"unicode/utf8"

	"github.com/rohmanhakim/weburl/pkg/percent"
)

// NormalizeInput repairs invalid UTF-8 with U+FFFD, removes every ASCII tab
// and newline, and trims leading and trailing C0 controls and spaces. It is
// the preprocessing Parse applies to its input.
func NormalizeInput(raw []byte) string {
	return normalizeInput(percent.ToValidUTF8(raw), true, nil)
}

func normalizeInput(input string, trim bool, report func(code string)) string {
	if !utf8.ValidString(input) {
		input = percent.ToValidUTF8([]byte(input))
	}

	if trim {
		trimmed := strings.TrimFunc(input, isC0ControlOrSpace)
		if len(trimmed) != len(input) && report != nil {
			report(CodeInvalidURLUnit)
		}
		input = trimmed
	}

	if strings.ContainsAny(input, "\t\n\r") {
		if report != nil {
			report(CodeInvalidURLUnit)
		}
		input = strings.Map(func(r rune) rune {
			if r == '\t' || r == '\n' || r == '\r' {
				return -1
			}
			return r
		}, input)
	}
	return input
}

func isC0ControlOrSpace(r rune) bool {
	return r <= 0x20
}
