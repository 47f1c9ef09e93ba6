// Package bloom provides the visited-set used for frontier deduplication,
// backed by a Bloom filter. False positives (a new URL reported as seen) are
// possible at the configured rate; false negatives are not, so a URL is
// never crawled twice.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter is a grow-only set of canonical URL strings.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a Filter sized for n expected URLs with the given false
// positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add marks a canonical URL as seen.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// Contains reports whether the URL might have been added. False positives
// are possible; false negatives are not.
func (f *Filter) Contains(url string) bool {
	return f.f.TestString(url)
}

// ApproxCount returns the approximate number of URLs added.
func (f *Filter) ApproxCount() uint {
	return uint(f.f.ApproximatedSize())
}
