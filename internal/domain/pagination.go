package domain

import "errors"

const DefaultPageSize = 5

// PageSizeOptions are the page sizes offered by the console. Other positive
// sizes are accepted.
var PageSizeOptions = []int{5, 10, 25}

var (
	ErrInvalidPageSize  = errors.New("page size must be a positive integer")
	ErrInvalidPageIndex = errors.New("page index must be non-negative")
)

// Paginate returns items[page*size : page*size+size] clipped to bounds.
// A size below 1 is treated as 1 and a negative page as 0.
func Paginate[T any](items []T, page, size int) []T {
	if size < 1 {
		size = 1
	}
	if page < 0 {
		page = 0
	}
	if len(items) == 0 || page > (len(items)-1)/size {
		return []T{}
	}
	start := page * size
	end := len(items)
	if size < end-start {
		end = start + size
	}
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}

// PageCount is the number of pages needed for n items at the given size.
func PageCount(n, size int) int {
	if size < 1 {
		size = 1
	}
	if n <= 0 {
		return 0
	}
	pages := n / size
	if n%size != 0 {
		pages++
	}
	return pages
}

// ViewState is the interactive member list state: search, filter and paging.
type ViewState struct {
	Query    string
	Status   StatusFilter
	Page     int
	PageSize int
}

func NewViewState() ViewState {
	return ViewState{Status: AllStatuses, PageSize: DefaultPageSize}
}

func (v ViewState) Filter() Filter {
	return Filter{Query: v.Query, Status: v.Status}
}

// SetPageSize changes the page size and moves back to the first page so the
// page index cannot point past the end.
func (v *ViewState) SetPageSize(size int) error {
	if size < 1 {
		return ErrInvalidPageSize
	}
	v.PageSize = size
	v.Page = 0
	return nil
}

func (v *ViewState) SetPage(page int) error {
	if page < 0 {
		return ErrInvalidPageIndex
	}
	v.Page = page
	return nil
}
