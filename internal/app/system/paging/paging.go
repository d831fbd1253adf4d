// Package paging implements page-number pagination for the catalog list
// endpoint: a 1-based page and a page size, translated into a Mongo
// skip/limit window plus the pagination metadata echoed to the client.
package paging

import (
	"net/http"
	"strconv"
)

// DefaultLimit is the page size used when the client does not send one.
const DefaultLimit = 10

// Page holds the parsed pagination window for a list request.
type Page struct {
	Number int // 1-based page number
	Limit  int // page size
}

// Parse extracts "page" and "limit" from the request query. Missing or
// invalid values fall back to page 1 and DefaultLimit.
func Parse(r *http.Request) Page {
	return Page{
		Number: parsePositive(r.URL.Query().Get("page"), 1),
		Limit:  parsePositive(r.URL.Query().Get("limit"), DefaultLimit),
	}
}

func parsePositive(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// Skip returns the number of documents to skip for this page.
func (p Page) Skip() int64 {
	return int64(p.Number-1) * int64(p.Limit)
}

// Meta is the pagination block returned alongside list results.
type Meta struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

// MetaFor computes the metadata for a total count. TotalPages is
// ceil(total/limit); zero matches yields zero pages.
func (p Page) MetaFor(total int64) Meta {
	pages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return Meta{
		CurrentPage:  p.Number,
		TotalPages:   pages,
		TotalItems:   total,
		ItemsPerPage: p.Limit,
	}
}
