package crawl_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/fwojciec/sitecrawl/crawl"
	"github.com/stretchr/testify/assert"
)

func TestContentDeduper_Record(t *testing.T) {
	t.Parallel()

	t.Run("first body is not a duplicate", func(t *testing.T) {
		t.Parallel()

		d := crawl.NewContentDeduper()
		first, dup := d.Record("https://example.com/a", "<html>hello</html>")
		assert.False(t, dup)
		assert.Empty(t, first)
	})

	t.Run("identical body under another URL is a duplicate", func(t *testing.T) {
		t.Parallel()

		d := crawl.NewContentDeduper()
		d.Record("https://example.com/a", "<html>hello</html>")

		first, dup := d.Record("https://example.com/mirror", "<html>hello</html>")
		assert.True(t, dup)
		assert.Equal(t, "https://example.com/a", first)
	})

	t.Run("different bodies are unrelated", func(t *testing.T) {
		t.Parallel()

		d := crawl.NewContentDeduper()
		d.Record("https://example.com/a", "<html>a</html>")

		_, dup := d.Record("https://example.com/b", "<html>b</html>")
		assert.False(t, dup)
	})
}

func TestContentDeduper_Concurrent(t *testing.T) {
	t.Parallel()

	d := crawl.NewContentDeduper()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		dups int
	)
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, dup := d.Record(fmt.Sprintf("https://example.com/p%d", i), "same body")
			if dup {
				mu.Lock()
				dups++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 15, dups, "exactly one recording wins")
}
