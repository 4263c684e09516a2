package leadfilter

// Page size bounds.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageSizes are the page sizes offered to clients.
var PageSizes = []int{5, 10, 20, 50}

// Page is one slice of a filtered result set.
type Page[T any] struct {
	Items      []T  `json:"items"`
	Page       int  `json:"page"`
	PageSize   int  `json:"pageSize"`
	TotalItems int  `json:"totalItems"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// NormalizePageSize maps non-positive sizes to DefaultPageSize and caps at MaxPageSize.
func NormalizePageSize(size int) int {
	switch {
	case size <= 0:
		return DefaultPageSize
	case size > MaxPageSize:
		return MaxPageSize
	default:
		return size
	}
}

// TotalPages is ceil(total/pageSize) with a minimum of 1, so an empty
// result still has a single, empty page.
func TotalPages(total, pageSize int) int {
	pageSize = NormalizePageSize(pageSize)
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// ClampPage keeps a 1-based page index within [1, totalPages].
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	switch {
	case page < 1:
		return 1
	case page > totalPages:
		return totalPages
	default:
		return page
	}
}

// Paginate returns the requested 1-based page of items. Out-of-range pages
// are clamped to the nearest valid one.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	pageSize = NormalizePageSize(pageSize)
	total := len(items)
	totalPages := TotalPages(total, pageSize)
	page = ClampPage(page, totalPages)

	start := min((page-1)*pageSize, total)
	end := min(start+pageSize, total)

	pageItems := make([]T, end-start)
	copy(pageItems, items[start:end])

	return Page[T]{
		Items:      pageItems,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
