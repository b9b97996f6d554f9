package enrich

import (
	"math"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// wordsPerMinute is the assumed average reading speed.
const wordsPerMinute = 200

// minLanguageSampleChars is the body length below which language
// detection is skipped and English assumed.
const minLanguageSampleChars = 50

// LanguageProfile pairs a language code with its defining stop-words.
// Profile order matters: ties go to the earliest profile.
type LanguageProfile struct {
	Code      string
	StopWords []string
}

// DefaultLanguageProfiles covers the fixed detection set, English first.
var DefaultLanguageProfiles = []LanguageProfile{
	{Code: "en", StopWords: []string{"the", "and", "is", "to", "of"}},
	{Code: "es", StopWords: []string{"el", "la", "de", "que", "y"}},
	{Code: "fr", StopWords: []string{"le", "la", "de", "et", "à"}},
	{Code: "de", StopWords: []string{"der", "die", "und", "in", "ist"}},
}

// ContentTypeRule maps URL path fragments to a content type. Rule order
// matters: the first matching rule wins.
type ContentTypeRule struct {
	Type          string
	PathFragments []string
}

// DefaultContentTypeRules classifies pages by URL path.
var DefaultContentTypeRules = []ContentTypeRule{
	{Type: "article", PathFragments: []string{"/article/", "/post/", "/blog/", "/news/"}},
	{Type: "doc_page", PathFragments: []string{"/docs/", "/documentation/", "/guide/", "/manual/"}},
	{Type: "product_page", PathFragments: []string{"/product/", "/item/", "/shop/"}},
	{Type: "tutorial", PathFragments: []string{"/tutorial/", "/how-to/", "/learn/"}},
	{Type: "about", PathFragments: []string{"/about", "/contact", "/team"}},
}

// titleKeywordRules classify by title when no path rule matched.
var titleKeywordRules = []ContentTypeRule{
	{Type: "tutorial", PathFragments: []string{"tutorial", "how to", "guide"}},
	{Type: "article", PathFragments: []string{"blog", "post", "article"}},
	{Type: "doc_page", PathFragments: []string{"documentation", "docs", "api"}},
}

// DefaultCodeIndicators are the fixed code-likelihood patterns counted by
// IsMostlyCode.
var DefaultCodeIndicators = []string{
	`function\s+\w+\s*\(`,
	`def\s+\w+\s*\(`,
	`class\s+\w+`,
	`import\s+\w+`,
	`#include`,
	`<\?php`,
	`console\.log`,
	`\.getElementById`,
}

// Enricher computes classification metadata for extracted documents. The
// rule tables are injected at construction so tests can substitute custom
// sets; now is overridable for deterministic timestamps.
type Enricher struct {
	languages      []LanguageProfile
	contentRules   []ContentTypeRule
	codeIndicators []*regexp.Regexp
	now            func() time.Time
}

// Option customizes an Enricher.
type Option func(*Enricher)

// WithLanguageProfiles replaces the stop-word tables.
func WithLanguageProfiles(profiles []LanguageProfile) Option {
	return func(e *Enricher) { e.languages = profiles }
}

// WithContentTypeRules replaces the URL-path classification rules.
func WithContentTypeRules(rules []ContentTypeRule) Option {
	return func(e *Enricher) { e.contentRules = rules }
}

// WithCodeIndicators replaces the code-likelihood patterns.
func WithCodeIndicators(patterns []string) Option {
	return func(e *Enricher) { e.codeIndicators = compilePatterns(patterns) }
}

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(e *Enricher) { e.now = now }
}

// New returns an Enricher with the default rule tables.
func New(opts ...Option) *Enricher {
	e := &Enricher{
		languages:      DefaultLanguageProfiles,
		contentRules:   DefaultContentTypeRules,
		codeIndicators: compilePatterns(DefaultCodeIndicators),
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func compilePatterns(patterns []string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(`(?i)`+p))
	}
	return compiled
}

// Enrich builds the final Document from extracted fields. It is pure
// apart from reading the clock.
func (e *Enricher) Enrich(pageURL, title, bodyText string) Document {
	wordCount := len(strings.Fields(bodyText))

	domain, path := splitURL(pageURL)

	return Document{
		URL:                pageURL,
		Title:              title,
		BodyText:           bodyText,
		CharCount:          utf8.RuneCountInString(bodyText),
		WordCount:          wordCount,
		Language:           e.DetectLanguage(bodyText),
		ContentType:        e.DetectContentType(pageURL, title),
		FetchedAt:          e.now().UTC().Format(time.RFC3339),
		ReadingTimeMinutes: EstimateReadingTime(wordCount),
		IsMostlyCode:       e.IsMostlyCode(bodyText),
		Domain:             domain,
		Path:               path,
	}
}

// DetectLanguage votes over stop-word counts per language profile. Short
// texts default to English, as do all-zero votes; ties go to the earliest
// profile.
func (e *Enricher) DetectLanguage(text string) string {
	if utf8.RuneCountInString(text) < minLanguageSampleChars {
		return "en"
	}

	tokens := tokenize(strings.ToLower(text))
	counts := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		counts[tok]++
	}

	best := "en"
	bestScore := 0
	for _, profile := range e.languages {
		score := 0
		for _, word := range profile.StopWords {
			score += counts[word]
		}
		if score > bestScore {
			best = profile.Code
			bestScore = score
		}
	}
	return best
}

// DetectContentType classifies by URL path fragments first, then by title
// keywords, defaulting to "page".
func (e *Enricher) DetectContentType(pageURL, title string) string {
	urlLower := strings.ToLower(pageURL)
	for _, rule := range e.contentRules {
		for _, fragment := range rule.PathFragments {
			if strings.Contains(urlLower, fragment) {
				return rule.Type
			}
		}
	}

	titleLower := strings.ToLower(title)
	for _, rule := range titleKeywordRules {
		for _, keyword := range rule.PathFragments {
			if strings.Contains(titleLower, keyword) {
				return rule.Type
			}
		}
	}
	return "page"
}

// IsMostlyCode reports whether the text looks like source code: at least
// three indicator matches, with estimated code density above roughly 1%.
func (e *Enricher) IsMostlyCode(text string) bool {
	if text == "" {
		return false
	}
	matches := 0
	for _, re := range e.codeIndicators {
		matches += len(re.FindAllStringIndex(text, -1))
	}
	return matches >= 3 && matches*100 > utf8.RuneCountInString(text)
}

// EstimateReadingTime converts a word count to whole minutes at the
// assumed reading speed, with a floor of one minute.
func EstimateReadingTime(wordCount int) int {
	minutes := int(math.Round(float64(wordCount) / wordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}

// tokenize splits lowered text into whole words for stop-word counting.
// Runs of letters and digits form a token, so "is9" does not count as
// the stop-word "is".
func tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func splitURL(pageURL string) (domain, path string) {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return "", ""
	}
	return parsed.Host, parsed.Path
}
