package crawler

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeLink(t *testing.T) {
	base, err := url.Parse("https://example.com/docs/intro")
	require.NoError(t, err)

	t.Run("resolves relative links", func(t *testing.T) {
		got, ok := NormalizeLink(base, "../guide/setup")
		require.True(t, ok)
		require.Equal(t, "https://example.com/guide/setup", got)
	})

	t.Run("strips fragments", func(t *testing.T) {
		got, ok := NormalizeLink(base, "https://example.com/page#section-2")
		require.True(t, ok)
		require.Equal(t, "https://example.com/page", got)
	})

	t.Run("fragment-only differences collapse", func(t *testing.T) {
		a, ok := NormalizeLink(base, "https://example.com/y#a")
		require.True(t, ok)
		b, ok := NormalizeLink(base, "https://example.com/y#b")
		require.True(t, ok)
		require.Equal(t, a, b)
	})

	t.Run("keeps query strings", func(t *testing.T) {
		got, ok := NormalizeLink(base, "/list?page=2&sort=asc#top")
		require.True(t, ok)
		require.Equal(t, "https://example.com/list?page=2&sort=asc", got)
	})

	t.Run("rejects empty href", func(t *testing.T) {
		_, ok := NormalizeLink(base, "   ")
		require.False(t, ok)
	})

	t.Run("rejects unparsable href", func(t *testing.T) {
		_, ok := NormalizeLink(base, "http://exa mple.com/%zz")
		require.False(t, ok)
	})
}

func TestSameOrigin(t *testing.T) {
	mustParse := func(raw string) *url.URL {
		u, err := url.Parse(raw)
		require.NoError(t, err)
		return u
	}

	cases := []struct {
		name string
		a    string
		b    string
		want bool
	}{
		{"identical", "https://example.com/x", "https://example.com/y", true},
		{"case-insensitive host", "https://Example.COM/x", "https://example.com/y", true},
		{"different scheme", "http://example.com/", "https://example.com/", false},
		{"subdomain does not match", "https://docs.example.com/", "https://example.com/", false},
		{"different port", "https://example.com:8443/", "https://example.com/", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, sameOrigin(mustParse(tc.a), mustParse(tc.b)))
		})
	}
}
