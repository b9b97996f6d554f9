package crawler

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVisitSetMarkIfNew(t *testing.T) {
	set := NewVisitSet()
	require.True(t, set.MarkIfNew("https://example.org/first"))
	require.False(t, set.MarkIfNew("https://example.org/first"))
	require.True(t, set.MarkIfNew("https://example.org/second"))
	require.False(t, set.MarkIfNew(""), "empty URL is never new")
	require.Equal(t, 2, set.Len())
}

func TestVisitSetContains(t *testing.T) {
	set := NewVisitSet()
	require.False(t, set.Contains("https://example.org/page"))
	set.MarkIfNew("https://example.org/page")
	require.True(t, set.Contains("https://example.org/page"))
}

func TestVisitSetConcurrentMark(t *testing.T) {
	set := NewVisitSet()
	const workers = 32

	wins := make(chan bool, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			wins <- set.MarkIfNew("https://example.org/contested")
		}()
	}
	wg.Wait()
	close(wins)

	winners := 0
	for won := range wins {
		if won {
			winners++
		}
	}
	require.Equal(t, 1, winners, "check-and-mark must admit exactly one caller")
}
