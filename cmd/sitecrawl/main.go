package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/sitecrawl"
	"github.com/fwojciec/sitecrawl/crawl"
	"github.com/fwojciec/sitecrawl/goquery"
	crawlhttp "github.com/fwojciec/sitecrawl/http"
	"github.com/fwojciec/sitecrawl/ndjson"
	"github.com/fwojciec/sitecrawl/robotstxt"
	crawlslog "github.com/fwojciec/sitecrawl/slog"
	"github.com/fwojciec/sitecrawl/sqlite"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("sitecrawl"),
		kong.Description("Crawl a website breadth-first and record its pages as NDJSON"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	_, err = parser.Parse(args)
	if err != nil {
		return err
	}

	// Failures that abort the process are reported as a [FATAL] line on
	// stderr before the error propagates, including when --log-file
	// redirects the crawl log elsewhere.
	fatal := slog.New(crawlslog.NewHandler(stderr, slog.LevelError))

	normalizer := crawl.Normalizer{PreserveScheme: cli.PreserveScheme}
	seed, err := normalizer.NormalizeString(cli.URL)
	if err != nil {
		fatal.Error("invalid seed URL", "url", cli.URL, "err", err)
		return fmt.Errorf("invalid URL %q: %w", cli.URL, err)
	}
	seedURL, err := url.Parse(seed)
	if err != nil {
		fatal.Error("invalid seed URL", "url", cli.URL, "err", err)
		return fmt.Errorf("invalid URL %q: %w", cli.URL, err)
	}

	logger, closeLog, err := m.logger(cli, stderr)
	if err != nil {
		fatal.Error("failed to create log file", "path", cli.LogFile, "err", err)
		return err
	}
	defer closeLog()

	out, err := os.Create(cli.Output)
	if err != nil {
		fatal.Error("failed to create output file", "path", cli.Output, "err", err)
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	writer := sitecrawl.PageWriter(ndjson.NewWriter(out))
	if cli.DB != "" {
		db := sqlite.NewDB(cli.DB)
		if err := db.Open(); err != nil {
			fatal.Error("failed to open database", "path", cli.DB, "err", err)
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		writer = multiWriter{writer, sqlite.NewPageService(db)}
	}

	limiter := crawl.NewLimiter(0, 0, 0)
	fetcher := sitecrawl.Fetcher(crawlhttp.NewFetcher(
		crawlhttp.WithTimeout(cli.Timeout),
		crawlhttp.WithLimiter(limiter),
	))
	fetcher = crawlslog.NewLoggingFetcher(fetcher, logger)
	defer fetcher.Close()

	var filterOpts []crawl.FilterOption
	if cli.StrictKeywords {
		filterOpts = append(filterOpts, crawl.WithMatchThreshold(2))
	}

	policy := sitecrawl.AccessPolicy(robotstxt.AllowAll())
	if !cli.IgnoreRobots {
		policy = robotstxt.New(ctx, fetcher, seedURL)
	}

	var extractorOpts []goquery.Option
	if cli.IncludeText {
		extractorOpts = append(extractorOpts, goquery.WithText())
	}

	workers := cli.Workers
	if workers <= 0 {
		workers = crawl.DefaultWorkers
		if cli.IncludeText || cli.IncludeContent {
			workers = crawl.DefaultWorkersHeavy
		}
	}

	crawler := &crawl.Crawler{
		Fetcher:        fetcher,
		Extractor:      goquery.NewExtractor(extractorOpts...),
		Frontier:       crawl.NewFrontier(normalizer, frontierCapacity, frontierFPRate),
		Writer:         writer,
		Filter:         crawl.NewKeywordFilter(seedURL, filterOpts...),
		Policy:         policy,
		Deduper:        crawl.NewContentDeduper(),
		Logger:         logger,
		IncludeText:    cli.IncludeText,
		IncludeContent: cli.IncludeContent,
		MaxDepth:       cli.MaxDepth,
		Workers:        workers,
	}

	begin := time.Now()
	stats, err := crawler.Run(ctx, seed)
	if err != nil {
		fatal.Error("crawl failed", "url", seed, "err", err)
		return err
	}

	fmt.Fprintf(stdout, "Crawled %d pages in %s (attempted %d, filtered %d, failed %d, duplicates %d)\n",
		stats.Succeeded, time.Since(begin).Round(time.Millisecond),
		stats.Attempted, stats.Filtered, stats.Failed, stats.Duplicates)
	return nil
}

// Frontier sizing: the Bloom filter is dimensioned for a large site at a low
// false positive rate; a false positive only costs a skipped URL.
const (
	frontierCapacity = 100_000
	frontierFPRate   = 0.001
)

// logger builds the crawl logger: verbose enables INFO, otherwise only WARN
// and above are emitted. With --log-file records go to the file instead of
// stderr.
func (m *Main) logger(cli *CLI, stderr io.Writer) (*slog.Logger, func(), error) {
	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelInfo
	}

	w := stderr
	closer := func() {}
	if cli.LogFile != "" {
		f, err := os.Create(cli.LogFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create log file: %w", err)
		}
		w = f
		closer = func() { _ = f.Close() }
	}

	return slog.New(crawlslog.NewHandler(w, level)), closer, nil
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URL            string        `arg:"" required:"" help:"Seed URL to crawl"`
	Output         string        `short:"o" required:"" help:"Output NDJSON file path"`
	LogFile        string        `short:"l" help:"Write logs to this file instead of stderr"`
	MaxDepth       int           `short:"m" default:"4" help:"Maximum link depth to follow from the seed"`
	Workers        int           `help:"Worker pool size (default scales with capture mode)"`
	Timeout        time.Duration `short:"t" default:"10s" help:"Fetch timeout per page"`
	Verbose        bool          `short:"v" help:"Log each fetched page"`
	IncludeText    bool          `xor:"capture" help:"Record the visible text of each page"`
	IncludeContent bool          `xor:"capture" help:"Record the raw HTML of each page"`
	DB             string        `help:"Also record pages into this SQLite database"`
	StrictKeywords bool          `help:"Only follow links sharing keywords with the seed path"`
	IgnoreRobots   bool          `help:"Skip robots.txt rules"`
	PreserveScheme bool          `help:"Do not upgrade http URLs to https"`
}

// multiWriter fans a page out to several writers; the first failure wins.
type multiWriter []sitecrawl.PageWriter

func (mw multiWriter) WritePage(ctx context.Context, page *sitecrawl.Page) error {
	for _, w := range mw {
		if err := w.WritePage(ctx, page); err != nil {
			return err
		}
	}
	return nil
}
