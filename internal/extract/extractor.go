// Package extract finds the title and main textual content of an HTML
// page, stripping boilerplate. Extraction is best-effort and never fails
// past this boundary: a broken parse degrades to regex-based tag
// stripping rather than dropping the page.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// ErrorTitle is the title reported when the parse path fails entirely.
const ErrorTitle = "Error extracting title"

// DefaultMainContentSelectors is the ordered list of selectors tried when
// locating the main content area. First match wins.
var DefaultMainContentSelectors = []string{
	"main",
	"article",
	"[role='main']",
	".content",
	".main-content",
	".post-content",
	".entry-content",
	"#content",
	"#main",
}

// DefaultBoilerplateSelectors matches page furniture removed before the
// main-content search. Removal is destructive: these subtrees contribute
// nothing to the extracted text.
var DefaultBoilerplateSelectors = []string{
	"nav",
	"header",
	"footer",
	"aside",
	".sidebar",
	".navigation",
	".menu",
	".footer",
	".header",
	"script",
	"style",
	".advertisement",
	".ads",
	".social-share",
	".comments",
	".comment-section",
}

// Content is the ephemeral output of extraction, handed straight to
// enrichment.
type Content struct {
	Title    string
	BodyText string
}

// Extractor extracts title and main-content text from raw HTML. The rule
// tables are injected so tests can substitute custom selector sets.
type Extractor struct {
	mainSelectors        []string
	boilerplateSelectors []string
	logger               *zap.Logger
}

// New returns an Extractor with the default selector tables.
func New(logger *zap.Logger) *Extractor {
	return NewWithSelectors(DefaultMainContentSelectors, DefaultBoilerplateSelectors, logger)
}

// NewWithSelectors returns an Extractor with custom selector tables.
func NewWithSelectors(mainSelectors, boilerplateSelectors []string, logger *zap.Logger) *Extractor {
	return &Extractor{
		mainSelectors:        mainSelectors,
		boilerplateSelectors: boilerplateSelectors,
		logger:               logger,
	}
}

// Extract returns the page title and cleaned main-content text. On any
// internal parse failure it falls back to ErrorTitle and regex-stripped
// text.
func (e *Extractor) Extract(rawHTML string) (content Content) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("Extraction panicked; falling back to tag stripping", zap.Any("cause", r))
			content = Content{Title: ErrorTitle, BodyText: stripTags(rawHTML)}
		}
	}()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		e.logger.Warn("HTML parse failed; falling back to tag stripping", zap.Error(err))
		return Content{Title: ErrorTitle, BodyText: stripTags(rawHTML)}
	}

	// Title resolution must precede boilerplate removal: an h1 inside a
	// header would otherwise be destroyed before it can be consulted.
	title := extractTitle(doc)
	body := e.extractBodyText(doc)

	return Content{Title: title, BodyText: body}
}

// extractTitle resolves the title through the fallback chain:
// <title> text, first <h1>, og:title, twitter:title, then "Untitled".
func extractTitle(doc *goquery.Document) string {
	if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		return t
	}
	if t := strings.TrimSpace(doc.Find("h1").First().Text()); t != "" {
		return t
	}
	if t, ok := doc.Find("meta[property='og:title']").First().Attr("content"); ok && t != "" {
		return t
	}
	if t, ok := doc.Find("meta[name='twitter:title']").First().Attr("content"); ok && t != "" {
		return t
	}
	return "Untitled"
}

func (e *Extractor) extractBodyText(doc *goquery.Document) string {
	e.removeBoilerplate(doc)
	main := e.findMainContent(doc)
	return normalizeWhitespace(flattenText(main))
}

// removeBoilerplate destructively removes comment nodes and every element
// matching the boilerplate selector table.
func (e *Extractor) removeBoilerplate(doc *goquery.Document) {
	for _, node := range doc.Nodes {
		removeComments(node)
	}
	for _, selector := range e.boilerplateSelectors {
		doc.Find(selector).Remove()
	}
}

// findMainContent tries the ordered selector list, then falls back to the
// densest div/section/article under <body> (if it holds more than 100
// characters of text), then <body>, then the whole document.
func (e *Extractor) findMainContent(doc *goquery.Document) *goquery.Selection {
	for _, selector := range e.mainSelectors {
		if s := doc.Find(selector).First(); s.Length() > 0 {
			return s
		}
	}

	body := doc.Find("body").First()
	if body.Length() == 0 {
		return doc.Selection
	}

	var best *goquery.Selection
	bestLen := 0
	body.Find("div, section, article").Each(func(_ int, s *goquery.Selection) {
		if l := len(flattenText(s)); l > bestLen {
			best = s
			bestLen = l
		}
	})
	if best != nil && bestLen > 100 {
		return best
	}
	return body
}

// flattenText joins the trimmed descendant text nodes of s with single
// spaces.
func flattenText(s *goquery.Selection) string {
	var parts []string
	for _, node := range s.Nodes {
		collectText(node, &parts)
	}
	return strings.Join(parts, " ")
}

func collectText(n *html.Node, parts *[]string) {
	if n.Type == html.TextNode {
		if t := strings.TrimSpace(n.Data); t != "" {
			*parts = append(*parts, t)
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}

func removeComments(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.CommentNode {
			n.RemoveChild(c)
		} else {
			removeComments(c)
		}
		c = next
	}
}
