// Package form implements the application/x-www-form-urlencoded format used
// by URL queries and HTML form submissions.
package form

import (
	"strings"

	"github.com/rohmanhakim/weburl/pkg/percent"
)

// Pair is one name/value entry. Order and duplicates are significant.
type Pair struct {
	Name  string
	Value string
}

// Parse splits input on '&' into pairs. '+' decodes to a space, escapes are
// percent-decoded and invalid UTF-8 is replaced with U+FFFD. Parsing never
// fails.
func Parse(input string) []Pair {
	var pairs []Pair
	for _, sequence := range strings.Split(input, "&") {
		if sequence == "" {
			continue
		}
		name, value, _ := strings.Cut(sequence, "=")
		pairs = append(pairs, Pair{
			Name:  decode(name),
			Value: decode(value),
		})
	}
	return pairs
}

// Serialize joins pairs as name=value separated by '&', encoding with the
// form percent-encode set and spaces as '+'.
func Serialize(pairs []Pair) string {
	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(percent.EncodeForm(p.Name))
		b.WriteByte('=')
		b.WriteString(percent.EncodeForm(p.Value))
	}
	return b.String()
}

func decode(s string) string {
	return percent.DecodeUTF8(strings.ReplaceAll(s, "+", " "))
}
