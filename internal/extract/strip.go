package extract

import (
	"regexp"
	"strings"
)

var (
	scriptBlockRe = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleBlockRe  = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	tagRe         = regexp.MustCompile(`<[^>]+>`)
	spaceRunRe    = regexp.MustCompile(` +`)
	newlineRunRe  = regexp.MustCompile(`\n\s*\n\s*\n+`)

	entityReplacer = strings.NewReplacer(
		"&nbsp;", " ",
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
	)
)

// stripTags is the recovery path when HTML parsing fails: script and
// style blocks go first (content included), then all remaining tags, then
// the six common entities are decoded.
func stripTags(rawHTML string) string {
	text := scriptBlockRe.ReplaceAllString(rawHTML, "")
	text = styleBlockRe.ReplaceAllString(text, "")
	text = tagRe.ReplaceAllString(text, "")
	text = entityReplacer.Replace(text)
	return normalizeWhitespace(text)
}

// normalizeWhitespace collapses runs of spaces to one, caps consecutive
// blank lines at a single paragraph break, and trims each line and the
// whole string.
func normalizeWhitespace(text string) string {
	text = spaceRunRe.ReplaceAllString(text, " ")
	text = newlineRunRe.ReplaceAllString(text, "\n\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
