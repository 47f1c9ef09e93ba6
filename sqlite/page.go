package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/fwojciec/sitecrawl"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ sitecrawl.PageWriter = (*PageService)(nil)

// PageService stores crawled page records in SQLite.
type PageService struct {
	db *DB
}

// NewPageService creates a new PageService.
func NewPageService(db *DB) *PageService {
	return &PageService{db: db}
}

// WritePage inserts one page record.
func (s *PageService) WritePage(ctx context.Context, page *sitecrawl.Page) error {
	if err := page.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pages (id, url, title, links, text, content, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, uuid.New().String(), page.URL, page.Title, page.Links,
		nullable(page.Text), nullable(page.Content),
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return sitecrawl.Errorf(sitecrawl.EINTERNAL, "insert page %q: %v", page.URL, err)
	}
	return nil
}

// FindPageByURL retrieves the most recently stored record for a URL.
// Returns ENOTFOUND if no record exists.
func (s *PageService) FindPageByURL(ctx context.Context, url string) (*sitecrawl.Page, error) {
	var page sitecrawl.Page
	var text, content sql.NullString

	err := s.db.QueryRowContext(ctx, `
		SELECT url, title, links, text, content
		FROM pages
		WHERE url = ?
		ORDER BY fetched_at DESC
		LIMIT 1
	`, url).Scan(&page.URL, &page.Title, &page.Links, &text, &content)

	if err == sql.ErrNoRows {
		return nil, sitecrawl.Errorf(sitecrawl.ENOTFOUND, "page %q not found", url)
	}
	if err != nil {
		return nil, err
	}

	if text.Valid {
		page.Text = &text.String
	}
	if content.Valid {
		page.Content = &content.String
	}

	return &page, nil
}

// FindPages retrieves all stored records in insertion order.
func (s *PageService) FindPages(ctx context.Context) ([]*sitecrawl.Page, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT url, title, links, text, content
		FROM pages
		ORDER BY rowid
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*sitecrawl.Page
	for rows.Next() {
		var page sitecrawl.Page
		var text, content sql.NullString
		if err := rows.Scan(&page.URL, &page.Title, &page.Links, &text, &content); err != nil {
			return nil, err
		}
		if text.Valid {
			page.Text = &text.String
		}
		if content.Valid {
			page.Content = &content.String
		}
		pages = append(pages, &page)
	}
	return pages, rows.Err()
}

// CountPages returns the number of stored records.
func (s *PageService) CountPages(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM pages").Scan(&n)
	return n, err
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
