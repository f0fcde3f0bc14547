package extractor

import "github.com/rohmanhakim/weburl/pkg/weburl"

type Format string

const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
)

// LinkKind names where a reference was found.
type LinkKind string

const (
	KindAnchor        LinkKind = "anchor"
	KindBase          LinkKind = "base"
	KindStylesheet    LinkKind = "link"
	KindImage         LinkKind = "image"
	KindScript        LinkKind = "script"
	KindFrame         LinkKind = "frame"
	KindMedia         LinkKind = "media"
	KindForm          LinkKind = "form"
	KindMarkdownLink  LinkKind = "markdown-link"
	KindMarkdownImage LinkKind = "markdown-image"
)

// Link is a reference resolved against the document's base URL.
// Raw is the attribute value or Markdown destination as written.
type Link struct {
	Raw     string
	Kind    LinkKind
	Element string
	URL     *weburl.URL
}

// RejectedLink is a reference the URL parser refused.
type RejectedLink struct {
	Raw  string
	Kind LinkKind
	Err  error
}

// ExtractionResult holds the extraction outcome.
// BaseURL is the URL references were resolved against: the first
// <base href> when it parses, otherwise DocumentURL.
// Links keeps document order; with deduplication only the first occurrence
// of each canonical URL is kept and the rest are counted in Duplicates.
type ExtractionResult struct {
	DocumentURL *weburl.URL
	BaseURL     *weburl.URL
	Links       []Link
	Rejected    []RejectedLink
	Duplicates  int
}

// Found returns the number of candidate references seen in the document.
func (r ExtractionResult) Found() int {
	return len(r.Links) + len(r.Rejected) + r.Duplicates
}
