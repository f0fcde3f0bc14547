package extractor

import (
	"fmt"
	"strings"
	"time"

	"github.com/rohmanhakim/weburl/internal/config"
	"github.com/rohmanhakim/weburl/internal/metadata"
	"github.com/rohmanhakim/weburl/pkg/failure"
	"github.com/rohmanhakim/weburl/pkg/fileutil"
	"github.com/rohmanhakim/weburl/pkg/hashutil"
	"github.com/rohmanhakim/weburl/pkg/urlutil"
	"github.com/rohmanhakim/weburl/pkg/weburl"
)

/*
Responsibilities
- Find every URL reference in an HTML or Markdown document
- Resolve each reference against the document's base URL
- Report references that fail to parse, one by one, without failing the document
- Drop references that canonicalize to an already seen URL

Resolution Rules
- HTML: the first <base href> sets the base, resolved against the document URL.
  A <base> that does not parse is reported and the document URL is used.
- Markdown: link and image destinations resolve against the document URL.
- Leading and trailing ASCII whitespace of attribute values is ignored.
- Without a document URL only absolute references resolve.
*/
type LinkExtractor struct {
	metadataSink  metadata.MetadataSink
	parser        weburl.Parser
	hashAlgo      hashutil.HashAlgo
	dedupe        bool
	keepFragments bool
}

func NewLinkExtractor(
	metadataSink metadata.MetadataSink,
	cfg config.Config,
) LinkExtractor {
	return LinkExtractor{
		metadataSink: metadataSink,
		parser: weburl.Parser{
			BeStrict: cfg.Strict(),
			Sink:     metadataSink,
		},
		hashAlgo:      cfg.HashAlgo(),
		dedupe:        cfg.Dedupe(),
		keepFragments: cfg.KeepFragments(),
	}
}

// DetectFormat guesses the document format from a file name. Anything that
// is not Markdown is treated as HTML.
func DetectFormat(name string) Format {
	switch strings.ToLower(fileutil.GetFileExtension(name)) {
	case "md", "markdown", "mdown", "mkd":
		return FormatMarkdown
	default:
		return FormatHTML
	}
}

// Extract dispatches on format. documentURL may be nil.
func (e *LinkExtractor) Extract(
	documentURL *weburl.URL,
	content []byte,
	format Format,
) (ExtractionResult, failure.ClassifiedError) {
	switch format {
	case FormatHTML:
		return e.ExtractHTML(documentURL, content)
	case FormatMarkdown:
		return e.ExtractMarkdown(documentURL, content), nil
	default:
		err := &ExtractionError{
			Message: fmt.Sprintf("%q", format),
			Cause:   ErrCauseUnsupportedFormat,
		}
		e.recordFailure(documentURL, "LinkExtractor.Extract", err)
		return ExtractionResult{}, err
	}
}

func (e *LinkExtractor) recordFailure(documentURL *weburl.URL, action string, err *ExtractionError) {
	e.metadataSink.RecordError(
		time.Now(),
		"extractor",
		action,
		mapExtractionErrorToMetadataCause(err),
		err.Error(),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrDocument, hrefOf(documentURL)),
		},
	)
}

// collector accumulates the links of one document.
type collector struct {
	extractor *LinkExtractor
	base      *weburl.URL
	seen      map[string]struct{}
	result    ExtractionResult
	startedAt time.Time
}

func (e *LinkExtractor) newCollector(documentURL *weburl.URL) *collector {
	return &collector{
		extractor: e,
		base:      documentURL,
		seen:      make(map[string]struct{}),
		result: ExtractionResult{
			DocumentURL: documentURL,
			BaseURL:     documentURL,
		},
		startedAt: time.Now(),
	}
}

// setBase resolves a <base href> value. A value that fails to parse is
// rejected and the document URL stays in effect.
func (c *collector) setBase(raw string) {
	u, err := c.resolve(raw)
	if err != nil {
		c.reject(raw, KindBase, err)
		return
	}
	c.base = u
	c.result.BaseURL = u
}

func (c *collector) add(raw string, kind LinkKind, element string) {
	u, err := c.resolve(raw)
	if err != nil {
		c.reject(raw, kind, err)
		return
	}

	if !c.extractor.keepFragments {
		// clearing the fragment cannot fail
		_ = u.SetFragment("")
	}

	if c.extractor.dedupe {
		key, err := urlutil.Key(u, c.extractor.hashAlgo)
		if err != nil {
			key = urlutil.Canonicalize(u).Href()
		}
		if _, ok := c.seen[key]; ok {
			c.result.Duplicates++
			return
		}
		c.seen[key] = struct{}{}
	}

	c.result.Links = append(c.result.Links, Link{
		Raw:     raw,
		Kind:    kind,
		Element: element,
		URL:     u,
	})
}

func (c *collector) resolve(raw string) (*weburl.URL, error) {
	return c.extractor.parser.Parse(trimASCIIWhitespace(raw), c.base)
}

func (c *collector) reject(raw string, kind LinkKind, err error) {
	c.result.Rejected = append(c.result.Rejected, RejectedLink{
		Raw:  raw,
		Kind: kind,
		Err:  err,
	})
	c.extractor.metadataSink.RecordError(
		time.Now(),
		"extractor",
		"LinkExtractor.resolve",
		metadata.CauseURLRejected,
		err.Error(),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrLink, raw),
			metadata.NewAttr(metadata.AttrDocument, hrefOf(c.result.DocumentURL)),
			metadata.NewAttr(metadata.AttrBaseURL, hrefOf(c.base)),
		},
	)
}

func (c *collector) finish() ExtractionResult {
	r := c.result
	c.extractor.metadataSink.RecordExtraction(metadata.NewExtractionStats(
		hrefOf(r.DocumentURL),
		r.Found(),
		len(r.Links),
		len(r.Rejected),
		r.Duplicates,
		time.Since(c.startedAt),
	))
	return r
}

func trimASCIIWhitespace(s string) string {
	return strings.Trim(s, "\t\n\f\r ")
}

func hrefOf(u *weburl.URL) string {
	if u == nil {
		return ""
	}
	return u.Href()
}
