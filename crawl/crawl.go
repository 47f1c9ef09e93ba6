// Package crawl implements the breadth-first crawl scheduler and its
// supporting pieces: the frontier, the URL normalizer, the relevance filter,
// the shared rate limiter, and duplicate-content tracking.
package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/fwojciec/sitecrawl"
	"golang.org/x/sync/errgroup"
)

// Worker pool sizing. Text and content extraction make per-page work
// heavier, so the pool shrinks when either is requested.
const (
	DefaultWorkers      = 9
	DefaultWorkersHeavy = 6
)

// DefaultBackoff is how long a worker sleeps when the frontier is
// momentarily empty but other workers still hold pending work.
const DefaultBackoff = 100 * time.Millisecond

// Stats holds the counters accumulated over a crawl run. Values are final
// once Run returns.
type Stats struct {
	Attempted  uint64 // fetches started, seed included
	Succeeded  uint64 // pages fetched, extracted, and recorded
	Filtered   uint64 // links rejected by the relevance filter or access policy
	Failed     uint64 // per-URL failures that were skipped
	Duplicates uint64 // bodies already seen under another URL
	Depth      int    // value of the depth counter at termination
}

// counters is the shared mutable form of Stats used while workers run.
type counters struct {
	attempted  atomic.Uint64
	succeeded  atomic.Uint64
	filtered   atomic.Uint64
	failed     atomic.Uint64
	duplicates atomic.Uint64
}

// Crawler drives a breadth-first traversal to completion using a fixed pool
// of workers that share one frontier, one rate-limited fetcher, and the
// depth/pending counters used for level advancement and termination
// detection.
//
// Depth advances only when a worker consumes a level boundary while no
// discovery work is in flight; the consumed boundary is replanted at the
// queue tail, behind the links already discovered for the next level. The
// pending-count check and other workers' concurrent Adds are not atomic with
// each other, so a link belonging to level d can slip past the level-d
// boundary in a narrow window. The crawl tolerates this weak ordering; a
// strict level barrier would need a rendezvous across all workers.
type Crawler struct {
	Fetcher   sitecrawl.Fetcher
	Extractor sitecrawl.Extractor
	Frontier  sitecrawl.Frontier
	Writer    sitecrawl.PageWriter

	// Filter, if set, gates discovered URLs by relevance to the seed.
	Filter sitecrawl.RelevanceFilter

	// Policy, if set, gates URLs by the site's access rules (robots.txt).
	Policy sitecrawl.AccessPolicy

	// Deduper, if set, tracks duplicate bodies across distinct URLs.
	Deduper *ContentDeduper

	// Logger receives WARN events for skipped URLs. Optional.
	Logger *slog.Logger

	// IncludeText/IncludeContent control which optional fields appear on
	// emitted records. Mutually exclusive by configuration.
	IncludeText    bool
	IncludeContent bool

	MaxDepth int           // deepest BFS level to fetch; 0 means seed only
	Workers  int           // pool size; defaults scale with extraction mode
	Backoff  time.Duration // empty-frontier retry sleep; defaults to DefaultBackoff
}

// Run crawls breadth-first from the seed URL until the depth limit is
// reached or the frontier drains with no work in flight. The seed itself is
// fetched before the pool starts; a seed failure is fatal, every later
// per-URL failure is logged and skipped.
func (c *Crawler) Run(ctx context.Context, seed string) (*Stats, error) {
	base, err := url.Parse(seed)
	if err != nil {
		return nil, sitecrawl.Errorf(sitecrawl.EINVALID, "parse seed URL %q: %v", seed, err)
	}
	if base.Host == "" {
		return nil, sitecrawl.Errorf(sitecrawl.EINVALID, "seed URL %q has no host", seed)
	}

	logger := c.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	backoff := c.Backoff
	if backoff <= 0 {
		backoff = DefaultBackoff
	}
	workers := c.Workers
	if workers <= 0 {
		workers = DefaultWorkers
		if c.IncludeText || c.IncludeContent {
			workers = DefaultWorkersHeavy
		}
	}

	var (
		cnt     counters
		depth   atomic.Int64
		pending atomic.Int64
	)

	// Level 0: fetch the seed once, outside the pool.
	cnt.attempted.Add(1)
	body, err := c.Fetcher.Fetch(ctx, seed)
	if err != nil {
		return nil, sitecrawl.Errorf(sitecrawl.EUNAVAILABLE, "fetch seed URL %q: %v", seed, err)
	}
	result, err := c.Extractor.Extract(body, base)
	if err != nil {
		return nil, sitecrawl.Errorf(sitecrawl.EINTERNAL, "extract seed URL %q: %v", seed, err)
	}

	for _, link := range result.Links {
		c.Frontier.Add(link)
	}
	c.Frontier.AddBoundary()
	depth.Store(1)

	if c.Deduper != nil {
		c.Deduper.Record(seed, body)
	}
	if err := c.Writer.WritePage(ctx, c.page(seed, body, result)); err != nil {
		cnt.failed.Add(1)
		logger.Warn("write record failed", "url", seed, "err", err)
	} else {
		cnt.succeeded.Add(1)
	}

	g, gctx := errgroup.WithContext(ctx)
	for range workers {
		g.Go(func() error {
			c.worker(gctx, &depth, &pending, &cnt, backoff)
			return nil
		})
	}
	_ = g.Wait()

	stats := &Stats{
		Attempted:  cnt.attempted.Load(),
		Succeeded:  cnt.succeeded.Load(),
		Filtered:   cnt.filtered.Load(),
		Failed:     cnt.failed.Load(),
		Duplicates: cnt.duplicates.Load(),
		Depth:      int(depth.Load()),
	}
	if err := ctx.Err(); err != nil {
		return stats, err
	}
	return stats, nil
}

// worker loops over the frontier until the depth limit passes or the
// frontier drains with no discovery work in flight anywhere in the pool.
func (c *Crawler) worker(ctx context.Context, depth, pending *atomic.Int64, cnt *counters, backoff time.Duration) {
	for {
		if ctx.Err() != nil {
			return
		}
		if depth.Load() > int64(c.MaxDepth) {
			return
		}

		item, ok := c.Frontier.Pop()
		if !ok {
			if pending.Load() > 0 {
				// More links may still arrive from in-flight work.
				sleep(ctx, backoff)
				continue
			}
			// Empty frontier, nothing pending: no link can ever arrive.
			return
		}

		if item.Kind == sitecrawl.KindBoundary {
			if pending.Load() > 0 {
				// Another worker may still be producing links for
				// the current level; keep the boundary at the head.
				c.Frontier.Requeue(item)
				sleep(ctx, backoff)
				continue
			}
			// Level exhausted: replant the boundary behind the links
			// already discovered for the next level, then advance.
			c.Frontier.AddBoundary()
			depth.Add(1)
			continue
		}

		pending.Add(1)
		c.process(ctx, item.URL, cnt)
		pending.Add(-1)
	}
}

// process handles a single popped URL. Every failure is converted into
// "skip and log"; nothing propagates out of the worker loop.
func (c *Crawler) process(ctx context.Context, rawURL string, cnt *counters) {
	logger := c.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		cnt.failed.Add(1)
		logger.Warn("failed to parse URL", "url", rawURL, "err", err)
		return
	}

	if c.Policy != nil && !c.Policy.Allowed(u) {
		cnt.filtered.Add(1)
		logger.Warn("disallowed by robots rules", "url", rawURL)
		return
	}
	if c.Filter != nil && !c.Filter.ShouldCrawl(u) {
		cnt.filtered.Add(1)
		return
	}

	cnt.attempted.Add(1)
	body, err := c.Fetcher.Fetch(ctx, rawURL)
	if err != nil {
		cnt.failed.Add(1)
		logger.Warn("failed to fetch URL", "url", rawURL, "err", err)
		return
	}

	result, err := c.Extractor.Extract(body, u)
	if err != nil {
		cnt.failed.Add(1)
		logger.Warn("failed to extract page", "url", rawURL, "err", err)
		return
	}

	for _, link := range result.Links {
		c.Frontier.Add(link)
	}

	if c.Deduper != nil {
		if first, dup := c.Deduper.Record(rawURL, body); dup {
			cnt.duplicates.Add(1)
			logger.Info("duplicate content", "url", rawURL, "first", first)
		}
	}

	if err := c.Writer.WritePage(ctx, c.page(rawURL, body, result)); err != nil {
		cnt.failed.Add(1)
		logger.Warn("write record failed", "url", rawURL, "err", err)
		return
	}
	cnt.succeeded.Add(1)
}

// page assembles the output record for a processed URL.
func (c *Crawler) page(pageURL, body string, result *sitecrawl.ExtractResult) *sitecrawl.Page {
	p := &sitecrawl.Page{
		URL:   pageURL,
		Title: result.Title,
		Links: len(result.Links),
	}
	if c.IncludeText {
		text := result.Text
		p.Text = &text
	}
	if c.IncludeContent {
		content := body
		p.Content = &content
	}
	return p
}

// sleep waits d or until the context is canceled, whichever comes first.
func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
