package crawl

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

// ContentDeduper tracks fingerprints of fetched bodies so mirror pages
// (distinct URLs serving identical content) can be counted and reported.
// It is safe for concurrent use.
type ContentDeduper struct {
	mu   sync.Mutex
	seen map[uint64]string
}

// NewContentDeduper creates an empty ContentDeduper.
func NewContentDeduper() *ContentDeduper {
	return &ContentDeduper{seen: make(map[uint64]string)}
}

// Record fingerprints body under url. If an identical body was recorded
// before, it returns the URL that first produced it and true.
func (d *ContentDeduper) Record(url, body string) (string, bool) {
	h := xxhash.Sum64String(body)

	d.mu.Lock()
	defer d.mu.Unlock()

	if first, ok := d.seen[h]; ok {
		return first, true
	}
	d.seen[h] = url
	return "", false
}
