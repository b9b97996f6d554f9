// Package enrich derives descriptive metadata from already-extracted
// title and body text: language, content classification, reading time,
// and code-content detection.
package enrich

// Document is the final unit of output, one per successfully extracted
// page. It is immutable after creation; ownership passes to the sink at
// the end of a run.
type Document struct {
	URL                string `json:"url"`
	Title              string `json:"title"`
	BodyText           string `json:"body_text"`
	CharCount          int    `json:"char_count"`
	WordCount          int    `json:"word_count"`
	Language           string `json:"language"`
	ContentType        string `json:"content_type"`
	FetchedAt          string `json:"fetched_at"`
	ReadingTimeMinutes int    `json:"reading_time_minutes"`
	IsMostlyCode       bool   `json:"is_mostly_code"`
	Domain             string `json:"domain"`
	Path               string `json:"path"`
}
