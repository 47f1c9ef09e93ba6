package crawl

import (
	"container/list"
	"sync"

	"github.com/fwojciec/sitecrawl"
	"github.com/fwojciec/sitecrawl/bloom"
)

// Compile-time interface verification.
var _ sitecrawl.Frontier = (*Frontier)(nil)

// Frontier is an in-memory FIFO crawl queue with Bloom filter deduplication.
// The queue and the visited set are guarded by one mutex so that the "is it
// new" check and the enqueue happen as a single atomic step. It is safe for
// concurrent use by multiple goroutines.
type Frontier struct {
	normalizer Normalizer

	mu    sync.Mutex
	seen  *bloom.Filter
	queue *list.List
}

// NewFrontier creates a Frontier sized for n expected URLs with the given
// false positive rate for deduplication.
func NewFrontier(normalizer Normalizer, n uint, fpRate float64) *Frontier {
	return &Frontier{
		normalizer: normalizer,
		seen:       bloom.NewFilter(n, fpRate),
		queue:      list.New(),
	}
}

// Add normalizes the URL and appends it to the queue tail. Returns false
// without enqueuing if the URL is empty, fails to normalize, or was seen
// before.
func (f *Frontier) Add(rawURL string) bool {
	if rawURL == "" {
		return false
	}
	canonical, err := f.normalizer.NormalizeString(rawURL)
	if err != nil {
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.seen.Contains(canonical) {
		return false
	}
	f.seen.Add(canonical)
	f.queue.PushBack(sitecrawl.LinkItem(canonical))
	return true
}

// AddBoundary appends a level-boundary sentinel to the queue tail.
// Boundaries bypass the visited set and are never deduplicated.
func (f *Frontier) AddBoundary() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue.PushBack(sitecrawl.BoundaryItem())
}

// Pop removes and returns the head item. The bool result is false if the
// queue is empty. Pop never blocks.
func (f *Frontier) Pop() (sitecrawl.Item, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	front := f.queue.Front()
	if front == nil {
		return sitecrawl.Item{}, false
	}
	f.queue.Remove(front)
	item, _ := front.Value.(sitecrawl.Item)
	return item, true
}

// Requeue pushes an item back onto the front of the queue.
func (f *Frontier) Requeue(item sitecrawl.Item) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue.PushFront(item)
}

// Seen reports whether the URL was ever accepted into the frontier.
func (f *Frontier) Seen(rawURL string) bool {
	canonical, err := f.normalizer.NormalizeString(rawURL)
	if err != nil {
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.Contains(canonical)
}

// Len returns the number of items currently queued.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queue.Len()
}
