package extractor

import (
	"sort"
	"strings"
)

type linkAttribute struct {
	attr string
	kind LinkKind
}

// linkAttributes lists, per element, the attribute holding a URL reference.
// <base> is handled separately since it changes how the others resolve.
//
//nolint:gochecknoglobals // This is a static lookup table that must be global
var linkAttributes = map[string]linkAttribute{
	"a":      {"href", KindAnchor},
	"area":   {"href", KindAnchor},
	"link":   {"href", KindStylesheet},
	"img":    {"src", KindImage},
	"script": {"src", KindScript},
	"iframe": {"src", KindFrame},
	"embed":  {"src", KindMedia},
	"audio":  {"src", KindMedia},
	"video":  {"src", KindMedia},
	"source": {"src", KindMedia},
	"track":  {"src", KindMedia},
	"form":   {"action", KindForm},
}

// linkSelector returns a selector group matching every element in
// linkAttributes that carries its URL attribute, e.g. "a[href], img[src]".
// Elements are sorted so the selector is stable.
func linkSelector() string {
	elements := make([]string, 0, len(linkAttributes))
	for element := range linkAttributes {
		elements = append(elements, element)
	}
	sort.Strings(elements)

	parts := make([]string, 0, len(elements))
	for _, element := range elements {
		parts = append(parts, element+"["+linkAttributes[element].attr+"]")
	}
	return strings.Join(parts, ", ")
}
