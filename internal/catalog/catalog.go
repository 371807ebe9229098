// Package catalog queries external book catalogs and normalizes their
// responses into one result shape.
package catalog

import (
	"context"
	"errors"
)

// Source discriminators accepted from the search form.
const (
	SourceGoogleBooks = "googleBooks"
	SourceOpenLibrary = "openLibrary"
)

// ErrInvalidSource is returned for an unrecognized discriminator. There is
// deliberately no fallback to a default catalog.
var ErrInvalidSource = errors.New("invalid search source")

// Result is the normalized book record shared by both catalogs.
type Result struct {
	Title          string
	Authors        string
	Description    string
	Rating         int
	PublishedDate  string
	TotalPageCount int
	Language       string
}

// Searcher dispatches a query to one of the configured catalog clients.
type Searcher struct {
	google      *GoogleBooksClient
	openLibrary *OpenLibraryClient
}

func NewSearcher(google *GoogleBooksClient, openLibrary *OpenLibraryClient) *Searcher {
	return &Searcher{google: google, openLibrary: openLibrary}
}

// Search runs the query against the catalog named by source and returns the
// normalized results along with the catalog's display label. Upstream
// failures are best-effort empty results, never errors; only an unknown
// source is an error.
func (s *Searcher) Search(ctx context.Context, source, query string) ([]Result, string, error) {
	switch source {
	case SourceGoogleBooks:
		return s.google.Search(ctx, query), "Google Books", nil
	case SourceOpenLibrary:
		return s.openLibrary.Search(ctx, query), "Open Library", nil
	default:
		return nil, "", ErrInvalidSource
	}
}
