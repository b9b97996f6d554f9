// Package analytics computes collection statistics over a scraped
// document corpus.
package analytics

import (
	"fmt"
	"io"
	"sort"

	"github.com/aicollect/sitescraper/internal/enrich"
)

// Distribution summarizes an integer field across the corpus.
type Distribution struct {
	Average float64 `json:"average"`
	Median  int     `json:"median"`
	Min     int     `json:"min"`
	Max     int     `json:"max"`
}

// Report aggregates corpus-level statistics.
type Report struct {
	TotalDocuments      int            `json:"total_documents"`
	WordCount           Distribution   `json:"word_count"`
	CharCount           Distribution   `json:"char_count"`
	Languages           map[string]int `json:"language_distribution"`
	ContentTypes        map[string]int `json:"content_type_distribution"`
	Domains             map[string]int `json:"domain_distribution"`
	TotalReadingMinutes int            `json:"total_reading_minutes"`
	AvgReadingMinutes   float64        `json:"avg_reading_minutes"`
	MostlyCodeDocuments int            `json:"mostly_code_documents"`
}

// Build computes a Report over docs. An empty corpus yields a zero-value
// report.
func Build(docs []enrich.Document) Report {
	report := Report{
		TotalDocuments: len(docs),
		Languages:      make(map[string]int),
		ContentTypes:   make(map[string]int),
		Domains:        make(map[string]int),
	}
	if len(docs) == 0 {
		return report
	}

	wordCounts := make([]int, 0, len(docs))
	charCounts := make([]int, 0, len(docs))
	for _, doc := range docs {
		wordCounts = append(wordCounts, doc.WordCount)
		charCounts = append(charCounts, doc.CharCount)
		report.Languages[doc.Language]++
		report.ContentTypes[doc.ContentType]++
		report.Domains[doc.Domain]++
		report.TotalReadingMinutes += doc.ReadingTimeMinutes
		if doc.IsMostlyCode {
			report.MostlyCodeDocuments++
		}
	}
	report.WordCount = distribution(wordCounts)
	report.CharCount = distribution(charCounts)
	report.AvgReadingMinutes = float64(report.TotalReadingMinutes) / float64(len(docs))
	return report
}

func distribution(values []int) Distribution {
	sorted := make([]int, len(values))
	copy(sorted, values)
	sort.Ints(sorted)

	sum := 0
	for _, v := range sorted {
		sum += v
	}
	return Distribution{
		Average: float64(sum) / float64(len(sorted)),
		Median:  sorted[len(sorted)/2],
		Min:     sorted[0],
		Max:     sorted[len(sorted)-1],
	}
}

// WriteText renders the report as a human-readable summary.
func (r Report) WriteText(w io.Writer) {
	line := func(format string, args ...any) {
		fmt.Fprintf(w, format+"\n", args...)
	}

	line("%s", divider)
	line("DOCUMENT COLLECTION STATISTICS")
	line("%s", divider)
	line("")
	line("Total Documents: %d", r.TotalDocuments)
	if r.TotalDocuments == 0 {
		return
	}

	line("")
	line("Word Count Statistics:")
	writeDistribution(w, r.WordCount)
	line("")
	line("Character Count Statistics:")
	writeDistribution(w, r.CharCount)

	line("")
	line("Language Distribution:")
	writeCounts(w, r.Languages, r.TotalDocuments)
	line("")
	line("Content Type Distribution:")
	writeCounts(w, r.ContentTypes, r.TotalDocuments)
	if len(r.Domains) > 1 {
		line("")
		line("Domain Distribution:")
		writeCounts(w, r.Domains, r.TotalDocuments)
	}

	line("")
	line("Reading Time Statistics:")
	line("  Total: %d minutes", r.TotalReadingMinutes)
	line("  Average: %.1f minutes per document", r.AvgReadingMinutes)

	line("")
	line("Code Content:")
	line("  Documents with mostly code: %d (%.1f%%)",
		r.MostlyCodeDocuments,
		percent(r.MostlyCodeDocuments, r.TotalDocuments),
	)
	line("%s", divider)
}

const divider = "============================================================"

func writeDistribution(w io.Writer, d Distribution) {
	fmt.Fprintf(w, "  Average: %.1f\n", d.Average)
	fmt.Fprintf(w, "  Median: %d\n", d.Median)
	fmt.Fprintf(w, "  Min: %d\n", d.Min)
	fmt.Fprintf(w, "  Max: %d\n", d.Max)
}

// writeCounts prints label counts sorted by descending count, then name
// for stable output.
func writeCounts(w io.Writer, counts map[string]int, total int) {
	type entry struct {
		name  string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for name, count := range counts {
		entries = append(entries, entry{name, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].name < entries[j].name
	})
	for _, e := range entries {
		fmt.Fprintf(w, "  %s: %d (%.1f%%)\n", e.name, e.count, percent(e.count, total))
	}
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
