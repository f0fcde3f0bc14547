package form

import (
	"slices"
	"strings"
	"unicode/utf16"
)

// SearchParams is an ordered, mutable list of query pairs.
type SearchParams struct {
	pairs []Pair
}

// NewSearchParams parses query, ignoring a single leading '?'.
func NewSearchParams(query string) *SearchParams {
	return &SearchParams{pairs: Parse(strings.TrimPrefix(query, "?"))}
}

// Pairs returns a copy of the list.
func (s *SearchParams) Pairs() []Pair {
	return slices.Clone(s.pairs)
}

func (s *SearchParams) Len() int {
	return len(s.pairs)
}

func (s *SearchParams) Append(name, value string) {
	s.pairs = append(s.pairs, Pair{Name: name, Value: value})
}

// Delete removes every pair with the given name.
func (s *SearchParams) Delete(name string) {
	s.pairs = slices.DeleteFunc(s.pairs, func(p Pair) bool {
		return p.Name == name
	})
}

// DeleteValue removes every pair matching both name and value.
func (s *SearchParams) DeleteValue(name, value string) {
	s.pairs = slices.DeleteFunc(s.pairs, func(p Pair) bool {
		return p.Name == name && p.Value == value
	})
}

// Get returns the value of the first pair with the given name.
func (s *SearchParams) Get(name string) (string, bool) {
	for _, p := range s.pairs {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

func (s *SearchParams) GetAll(name string) []string {
	var values []string
	for _, p := range s.pairs {
		if p.Name == name {
			values = append(values, p.Value)
		}
	}
	return values
}

func (s *SearchParams) Has(name string) bool {
	_, ok := s.Get(name)
	return ok
}

// Set replaces the value of the first pair with the given name and removes
// the others, or appends a new pair when none exists.
func (s *SearchParams) Set(name, value string) {
	i := slices.IndexFunc(s.pairs, func(p Pair) bool {
		return p.Name == name
	})
	if i < 0 {
		s.Append(name, value)
		return
	}
	s.pairs[i].Value = value
	rest := slices.DeleteFunc(s.pairs[i+1:], func(p Pair) bool {
		return p.Name == name
	})
	s.pairs = s.pairs[:i+1+len(rest)]
}

// Sort orders pairs by name, comparing UTF-16 code units. Pairs with equal
// names keep their relative order.
func (s *SearchParams) Sort() {
	slices.SortStableFunc(s.pairs, func(a, b Pair) int {
		return compareUTF16(a.Name, b.Name)
	})
}

func (s *SearchParams) String() string {
	return Serialize(s.pairs)
}

func compareUTF16(a, b string) int {
	return slices.Compare(utf16.Encode([]rune(a)), utf16.Encode([]rune(b)))
}
