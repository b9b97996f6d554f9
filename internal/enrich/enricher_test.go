package enrich

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEstimateReadingTime(t *testing.T) {
	tests := []struct {
		words int
		want  int
	}{
		{0, 1},
		{50, 1},
		{200, 1},
		{300, 2},
		{1000, 5},
		{2500, 13},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, EstimateReadingTime(tc.words), "words=%d", tc.words)
	}
}

func TestDetectLanguage(t *testing.T) {
	e := New()

	t.Run("short text defaults to english", func(t *testing.T) {
		require.Equal(t, "en", e.DetectLanguage("el que y la de"))
	})

	t.Run("english", func(t *testing.T) {
		text := "The quick brown fox jumps over the lazy dog and runs to the edge of the field."
		require.Equal(t, "en", e.DetectLanguage(text))
	})

	t.Run("spanish", func(t *testing.T) {
		text := "El perro corre por la calle y el gato duerme en la casa que compramos el verano pasado."
		require.Equal(t, "es", e.DetectLanguage(text))
	})

	t.Run("french accented stop word counts", func(t *testing.T) {
		text := "Le chat et le chien vont à la maison et le garçon parle à la fille près de la porte."
		require.Equal(t, "fr", e.DetectLanguage(text))
	})

	t.Run("german", func(t *testing.T) {
		text := "Der Hund und die Katze sind in der Stadt und der Mann ist in dem Haus und die Frau ist hier."
		require.Equal(t, "de", e.DetectLanguage(text))
	})

	t.Run("no stop words defaults to english", func(t *testing.T) {
		text := strings.Repeat("wibble wobble flurb glorp snark ", 5)
		require.Equal(t, "en", e.DetectLanguage(text))
	})

	t.Run("stop words inside larger words do not count", func(t *testing.T) {
		// "lethal" contains "le", "delay" contains "de"; neither is a
		// whole-token match, so the text stays English by default.
		text := strings.Repeat("lethal delay lantern quest marble ", 3)
		require.Equal(t, "en", e.DetectLanguage(text))
	})
}

func TestDetectContentType(t *testing.T) {
	e := New()

	tests := []struct {
		name  string
		url   string
		title string
		want  string
	}{
		{"blog path", "https://site.test/blog/2024/go-tips", "Go Tips", "article"},
		{"docs path", "https://site.test/docs/setup", "Setup", "doc_page"},
		{"product path", "https://site.test/shop/widget-9", "Widget", "product_page"},
		{"tutorial path", "https://site.test/learn/go", "Go", "tutorial"},
		{"about path", "https://site.test/about", "Us", "about"},
		{"path beats title", "https://site.test/blog/x", "API documentation", "article"},
		{"title tutorial keyword", "https://site.test/x", "How to bake bread", "tutorial"},
		{"title docs keyword", "https://site.test/x", "REST API reference", "doc_page"},
		{"case insensitive url", "https://site.test/Blog/Entry", "x", "article"},
		{"default", "https://site.test/misc", "Plain old page", "page"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, e.DetectContentType(tc.url, tc.title))
		})
	}
}

func TestIsMostlyCode(t *testing.T) {
	e := New()

	t.Run("dense code snippet", func(t *testing.T) {
		text := `function setup() { console.log("a"); }
function run() { console.log("b"); }
class Runner {}`
		require.True(t, e.IsMostlyCode(text))
	})

	t.Run("prose with a passing mention", func(t *testing.T) {
		text := "This article explains how the import statement works in Python " +
			"and why a class hierarchy helps structure programs."
		require.False(t, e.IsMostlyCode(text))
	})

	t.Run("few matches diluted by long prose", func(t *testing.T) {
		text := "def main(): pass\nclass App:\nimport os\n" + strings.Repeat("Plain explanatory sentence follows here. ", 20)
		require.False(t, e.IsMostlyCode(text))
	})

	t.Run("empty text", func(t *testing.T) {
		require.False(t, e.IsMostlyCode(""))
	})
}

func TestEnrich(t *testing.T) {
	fixed := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	e := New(WithClock(func() time.Time { return fixed }))

	body := strings.Repeat("the quick brown fox and the lazy dog of the north ", 25)
	doc := e.Enrich("https://example.test/blog/foxes?ref=home", "All About Foxes", body)

	require.Equal(t, "https://example.test/blog/foxes?ref=home", doc.URL)
	require.Equal(t, "All About Foxes", doc.Title)
	require.Equal(t, body, doc.BodyText)
	require.Equal(t, len(body), doc.CharCount)
	require.Equal(t, 275, doc.WordCount)
	require.Equal(t, "en", doc.Language)
	require.Equal(t, "article", doc.ContentType)
	require.Equal(t, "2024-03-15T10:30:00Z", doc.FetchedAt)
	require.Equal(t, 1, doc.ReadingTimeMinutes)
	require.False(t, doc.IsMostlyCode)
	require.Equal(t, "example.test", doc.Domain)
	require.Equal(t, "/blog/foxes", doc.Path)
}

func TestEnrichCharCountIsRunes(t *testing.T) {
	e := New()
	doc := e.Enrich("https://example.test/x", "t", "héllo wörld")
	require.Equal(t, 11, doc.CharCount)
}
