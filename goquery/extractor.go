// Package goquery provides a goquery-based implementation of
// webinsight.Extractor. Main content is located through an ordered cascade
// of heuristics, from semantic article containers down to a whole-document
// markdown conversion.
package goquery

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/webinsight-api/webinsight"
)

// containerSelector matches the containers sites conventionally use for
// their main article body, in document order.
const containerSelector = "article, .article, .post, .content, main, #main, #content"

// Thresholds for the paragraph and largest-block heuristics.
const (
	minParagraphCount  = 3   // more than this many <p> tags required
	minParagraphLength = 40  // runes; shorter paragraphs are noise
	minJoinedLength    = 500 // runes; joined paragraphs must exceed this
	minBlockLength     = 200 // runes; div/section blocks at or below are ignored
)

var (
	imageMarkdownRe = regexp.MustCompile(`!\[.*?\]\(.*?\)`)
	blankRunRe      = regexp.MustCompile(`\n\s*\n+`)
)

// Ensure Extractor implements webinsight.Extractor at compile time.
var _ webinsight.Extractor = (*Extractor)(nil)

// contentStrategy attempts to locate main content in a parsed document.
// It reports whether its result qualifies; the first qualifying strategy
// in the cascade wins.
type contentStrategy func(doc *goquery.Document) (string, bool)

// Extractor extracts title, description, Open Graph metadata, and
// normalized article text from raw HTML.
type Extractor struct {
	converter  webinsight.Converter
	strategies []contentStrategy
}

// NewExtractor creates a new Extractor. The converter backs the final
// markdown-fallback strategy.
func NewExtractor(converter webinsight.Converter) *Extractor {
	e := &Extractor{converter: converter}
	e.strategies = []contentStrategy{
		containerContent,
		paragraphContent,
		largestBlockContent,
		e.markdownContent,
	}
	return e
}

// Extract processes raw HTML and returns the page content. It never fails:
// unparseable input degrades to zero-value fields.
func (e *Extractor) Extract(rawHTML string) *webinsight.PageContent {
	page := &webinsight.PageContent{OpenGraph: map[string]string{}}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return page
	}

	page.Title = strings.TrimSpace(doc.Find("title").First().Text())
	page.Description = strings.TrimSpace(doc.Find(`meta[name="description"]`).AttrOr("content", ""))

	// Open Graph properties; a later duplicate overwrites an earlier one.
	doc.Find(`meta[property^="og:"]`).Each(func(_ int, sel *goquery.Selection) {
		prop, _ := sel.Attr("property")
		key := strings.TrimPrefix(prop, "og:")
		content, _ := sel.Attr("content")
		if key == "" || content == "" {
			return
		}
		page.OpenGraph[key] = strings.TrimSpace(content)
	})

	for _, strategy := range e.strategies {
		if text, ok := strategy(doc); ok {
			page.Content = Normalize(text)
			break
		}
	}

	return page
}

// containerContent takes the text of the first article-like container.
// A match wins outright, even when its text is short.
func containerContent(doc *goquery.Document) (string, bool) {
	sel := doc.Find(containerSelector)
	if sel.Length() == 0 {
		return "", false
	}
	return nodeText(sel.First()), true
}

// paragraphContent aggregates substantial <p> elements. Qualifies only on
// pages with enough paragraphs and enough joined text to look like an
// article rather than scattered UI copy.
func paragraphContent(doc *goquery.Document) (string, bool) {
	paragraphs := doc.Find("p")
	if paragraphs.Length() <= minParagraphCount {
		return "", false
	}

	var parts []string
	paragraphs.Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if utf8.RuneCountInString(text) > minParagraphLength {
			parts = append(parts, text)
		}
	})

	joined := strings.Join(parts, "\n\n")
	if utf8.RuneCountInString(joined) <= minJoinedLength {
		return "", false
	}
	return joined, true
}

// largestBlockContent picks the longest <div> or <section> text block.
// Ties keep the first block in document order.
func largestBlockContent(doc *goquery.Document) (string, bool) {
	var best string
	var bestLen int
	doc.Find("div, section").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if n := utf8.RuneCountInString(text); n > minBlockLength && n > bestLen {
			best = text
			bestLen = n
		}
	})
	return best, bestLen > 0
}

// markdownContent converts the whole document to markdown. Terminal
// strategy: it always claims the result, even an empty one.
func (e *Extractor) markdownContent(doc *goquery.Document) (string, bool) {
	htmlStr, err := doc.Html()
	if err != nil {
		return "", true
	}

	markdown, err := e.converter.Convert(htmlStr)
	if err != nil {
		return "", true
	}

	markdown = imageMarkdownRe.ReplaceAllString(markdown, "")
	markdown = blankRunRe.ReplaceAllString(markdown, "\n\n")
	return markdown, true
}

// nodeText concatenates the text nodes under the selection in document
// order, separated by newlines.
func nodeText(sel *goquery.Selection) string {
	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			parts = append(parts, n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return strings.Join(parts, "\n")
}
