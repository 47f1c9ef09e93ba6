package sitecrawl

// ItemKind discriminates frontier items.
type ItemKind int

// Frontier item kinds.
const (
	// KindLink is a real URL waiting to be crawled.
	KindLink ItemKind = iota

	// KindBoundary marks the end of one BFS depth level. All URLs at the
	// current depth were enqueued before the boundary.
	KindBoundary
)

// Item is a single entry in the crawl frontier: either a canonical URL or a
// level boundary. Modeling the boundary as its own kind (rather than a magic
// URL value) means no real URL can ever collide with the sentinel.
type Item struct {
	Kind ItemKind
	URL  string
}

// LinkItem returns a frontier item carrying a canonical URL.
func LinkItem(url string) Item {
	return Item{Kind: KindLink, URL: url}
}

// BoundaryItem returns a level-boundary sentinel item.
func BoundaryItem() Item {
	return Item{Kind: KindBoundary}
}

// Frontier is the shared crawl queue plus the set of URLs ever enqueued.
// Implementations must be safe for concurrent use by multiple workers, and
// must make the "is it new" check and the enqueue a single atomic step.
type Frontier interface {
	// Add normalizes the URL and appends it to the queue tail.
	// Returns false without enqueuing if the URL is empty, fails to
	// normalize, or has been seen before.
	Add(url string) bool

	// AddBoundary appends a level-boundary sentinel to the queue tail.
	// Boundaries bypass deduplication.
	AddBoundary()

	// Pop removes and returns the head item. The bool result is false if
	// the queue is empty. Pop never blocks; callers decide how to wait.
	Pop() (Item, bool)

	// Requeue pushes an item back onto the front of the queue. Used to
	// re-insert a boundary that was popped while work was still pending.
	Requeue(item Item)

	// Seen reports whether the URL was ever accepted into the frontier.
	Seen(url string) bool

	// Len returns the number of items currently queued.
	Len() int
}
