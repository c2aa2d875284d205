// Package pagination holds the page arithmetic shared by the search link
// builder and the data tables. Both sides must be given the same page size.
package pagination

// DefaultPageSize matches the tables' default page size.
const DefaultPageSize = 10

// State describes a table's pagination. CurrentPage is 1-based.
type State struct {
	CurrentPage int
	PageSize    int
	TotalItems  int
}

// PageNumber returns the 1-based page that the item at index falls on.
func PageNumber(index, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if index < 0 {
		index = 0
	}
	return index/pageSize + 1
}

// TotalPages returns the number of pages needed for totalItems, never less
// than one.
func TotalPages(totalItems, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	n := (totalItems + pageSize - 1) / pageSize
	if n < 1 {
		return 1
	}
	return n
}

// Clamp limits page to [1, TotalPages].
func Clamp(page, totalItems, pageSize int) int {
	if page < 1 {
		return 1
	}
	if last := TotalPages(totalItems, pageSize); page > last {
		return last
	}
	return page
}

// Bounds returns the half-open slice range [start, end) of the given page.
func Bounds(page, pageSize, totalItems int) (start, end int) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	page = Clamp(page, totalItems, pageSize)
	start = (page - 1) * pageSize
	end = start + pageSize
	if start > totalItems {
		start = totalItems
	}
	if end > totalItems {
		end = totalItems
	}
	return start, end
}

// TotalPages returns the page count of s.
func (s State) TotalPages() int {
	return TotalPages(s.TotalItems, s.PageSize)
}

// Bounds returns the slice range of the current page of s.
func (s State) Bounds() (start, end int) {
	return Bounds(s.CurrentPage, s.PageSize, s.TotalItems)
}
