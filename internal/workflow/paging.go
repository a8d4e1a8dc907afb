package workflow

import "merchant-console/internal/prompt"

const (
	// ProductPageSize is how many products a paged inventory view shows.
	ProductPageSize = 4
	// CartPageSize is how many cart items a paged cart view shows.
	CartPageSize = 5
)

// totalPages returns the page count for n items, never below one so an
// empty view still renders a page.
func totalPages(n, pageSize int) int {
	if n == 0 {
		return 1
	}
	return (n + pageSize - 1) / pageSize
}

// pageSlice returns the items of one 1-based page.
func pageSlice[T any](items []T, page, pageSize int) []T {
	start := (page - 1) * pageSize
	if start >= len(items) {
		return nil
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// turnPage applies a page-turn token, alerting at either edge through
// the given callbacks. It returns the new page and whether the input
// was a page-turn at all.
func turnPage(input string, page, pages int, atFirst, atLast func()) (int, bool) {
	switch input {
	case prompt.TokenNextPage:
		if page == pages {
			atLast()
			return page, true
		}
		return page + 1, true
	case prompt.TokenPrevPage:
		if page == 1 {
			atFirst()
			return page, true
		}
		return page - 1, true
	}
	return page, false
}
