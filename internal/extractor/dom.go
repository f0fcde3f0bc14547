package extractor

import (
	"bytes"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/rohmanhakim/weburl/pkg/failure"
	"github.com/rohmanhakim/weburl/pkg/weburl"
)

// ExtractHTML collects the URL references of an HTML document in document
// order. Only a document that cannot be read at all is an error.
func (e *LinkExtractor) ExtractHTML(
	documentURL *weburl.URL,
	htmlByte []byte,
) (ExtractionResult, failure.ClassifiedError) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(htmlByte))
	if err != nil {
		extractionErr := &ExtractionError{
			Message: fmt.Sprintf("failed to parse HTML: %v", err),
			Cause:   ErrCauseNotHTML,
		}
		e.recordFailure(documentURL, "LinkExtractor.ExtractHTML", extractionErr)
		return ExtractionResult{}, extractionErr
	}

	c := e.newCollector(documentURL)

	// Only the first <base> with an href counts.
	if base := doc.Find("base[href]").First(); base.Length() > 0 {
		href, _ := base.Attr("href")
		c.setBase(href)
	}

	doc.Find(linkSelector()).Each(func(_ int, s *goquery.Selection) {
		element := goquery.NodeName(s)
		la, ok := linkAttributes[element]
		if !ok {
			return
		}
		raw, ok := s.Attr(la.attr)
		if !ok {
			return
		}
		c.add(raw, la.kind, element)
	})

	return c.finish(), nil
}
