package main_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	main "github.com/fwojciec/sitecrawl/cmd/sitecrawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--help"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "sitecrawl")
	assert.Contains(t, stdout.String(), "url")
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{}, &stdout, &stderr)

	require.Error(t, err)
	assert.Contains(t, stdout.String(), "sitecrawl")
}

func TestMain_Run_RequiresOutput(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"https://example.com"}, &stdout, &stderr)

	assert.Error(t, err)
}

func TestMain_Run_TextAndContentAreExclusive(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{
		"https://example.com", "-o", "out.ndjson",
		"--include-text", "--include-content",
	}, &stdout, &stderr)

	assert.Error(t, err)
}

func TestMain_Run_RejectsInvalidURL(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"/no-host", "-o", filepath.Join(t.TempDir(), "out.ndjson")}, &stdout, &stderr)

	assert.Error(t, err)
}

func TestMain_Run_ReportsSetupFailuresAsFatal(t *testing.T) {
	t.Parallel()

	t.Run("invalid seed URL", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		var stdout, stderr bytes.Buffer

		err := m.Run(context.Background(), []string{
			"/no-host", "-o", filepath.Join(t.TempDir(), "out.ndjson"),
		}, &stdout, &stderr)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "[FATAL]")
		assert.Contains(t, stderr.String(), "invalid seed URL")
	})

	t.Run("unwritable output file", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		var stdout, stderr bytes.Buffer

		err := m.Run(context.Background(), []string{
			"https://example.com", "-o", filepath.Join(t.TempDir(), "missing", "out.ndjson"),
		}, &stdout, &stderr)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "[FATAL]")
		assert.Contains(t, stderr.String(), "failed to create output file")
	})

	t.Run("unwritable log file", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		var stdout, stderr bytes.Buffer

		err := m.Run(context.Background(), []string{
			"https://example.com",
			"-o", filepath.Join(t.TempDir(), "out.ndjson"),
			"-l", filepath.Join(t.TempDir(), "missing", "crawl.log"),
		}, &stdout, &stderr)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "[FATAL]")
		assert.Contains(t, stderr.String(), "failed to create log file")
	})
}

func TestMain_Run_CrawlsSite(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head><title>Home</title></head><body><a href="/docs">Docs</a></body></html>`))
	})
	mux.HandleFunc("/docs", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head><title>Docs</title></head><body><a href="/docs/deeper">More</a></body></html>`))
	})
	mux.HandleFunc("/docs/deeper", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head><title>Deeper</title></head><body>end</body></html>`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	out := filepath.Join(t.TempDir(), "out.ndjson")
	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{
		srv.URL, "-o", out,
		"--preserve-scheme", "--ignore-robots",
		"-m", "1",
	}, &stdout, &stderr)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2, "seed and one level-1 page")
	assert.Contains(t, lines[0], `"Title":"Home"`)
	assert.Contains(t, lines[1], `"Title":"Docs"`)
	assert.NotContains(t, string(data), "Deeper", "depth limit stops before level 2")

	assert.Contains(t, stdout.String(), "Crawled 2 pages")
}

func TestMain_Run_WritesToDatabase(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head><title>Solo</title></head><body>no links</body></html>`))
	}))
	defer srv.Close()

	dir := t.TempDir()
	out := filepath.Join(dir, "out.ndjson")
	db := filepath.Join(dir, "pages.db")
	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{
		srv.URL, "-o", out, "--db", db,
		"--preserve-scheme", "--ignore-robots",
		"-m", "0",
	}, &stdout, &stderr)
	require.NoError(t, err)

	info, err := os.Stat(db)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
