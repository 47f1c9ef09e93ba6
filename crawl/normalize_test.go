package crawl_test

import (
	"net/url"
	"testing"

	"github.com/fwojciec/sitecrawl"
	"github.com/fwojciec/sitecrawl/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizer_Normalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "upgrades http to https",
			in:   "http://example.com/docs",
			want: "https://example.com/docs",
		},
		{
			name: "lowercases the host",
			in:   "https://Example.COM/Docs",
			want: "https://example.com/Docs",
		},
		{
			name: "strips the fragment",
			in:   "https://example.com/docs#section-2",
			want: "https://example.com/docs",
		},
		{
			name: "keeps the query string",
			in:   "https://example.com/search?q=go&page=2",
			want: "https://example.com/search?q=go&page=2",
		},
		{
			name: "already canonical",
			in:   "https://example.com/docs",
			want: "https://example.com/docs",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var n crawl.Normalizer
			got, err := n.NormalizeString(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizer_Idempotent(t *testing.T) {
	t.Parallel()

	var n crawl.Normalizer
	once, err := n.NormalizeString("HTTP://Example.com/Path#frag")
	require.NoError(t, err)
	twice, err := n.NormalizeString(once)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestNormalizer_PreserveScheme(t *testing.T) {
	t.Parallel()

	n := crawl.Normalizer{PreserveScheme: true}
	got, err := n.NormalizeString("http://127.0.0.1:8080/docs")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8080/docs", got)
}

func TestNormalizer_Errors(t *testing.T) {
	t.Parallel()

	t.Run("relative URL has no host", func(t *testing.T) {
		t.Parallel()

		var n crawl.Normalizer
		_, err := n.NormalizeString("/docs/page")
		assert.Equal(t, sitecrawl.EINVALID, sitecrawl.ErrorCode(err))
	})

	t.Run("nil URL", func(t *testing.T) {
		t.Parallel()

		var n crawl.Normalizer
		_, err := n.Normalize(nil)
		assert.Equal(t, sitecrawl.EINVALID, sitecrawl.ErrorCode(err))
	})

	t.Run("unparseable URL", func(t *testing.T) {
		t.Parallel()

		var n crawl.Normalizer
		_, err := n.NormalizeString("https://example.com/%zz\x7f")
		assert.Equal(t, sitecrawl.EINVALID, sitecrawl.ErrorCode(err))
	})
}

func TestNormalizer_Normalize_DoesNotMutate(t *testing.T) {
	t.Parallel()

	u, err := url.Parse("http://Example.com/docs#frag")
	require.NoError(t, err)

	var n crawl.Normalizer
	_, err = n.Normalize(u)
	require.NoError(t, err)

	assert.Equal(t, "http", u.Scheme)
	assert.Equal(t, "Example.com", u.Host)
	assert.Equal(t, "frag", u.Fragment)
}
