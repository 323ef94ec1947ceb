// Package pagination computes which page links to show for a paged listing.
// It only decides the window of page numbers; callers slice the item list
// themselves.
package pagination

const (
	// DefaultPageSize is the number of items shown per page.
	DefaultPageSize = 10
	// DefaultMaxLinks caps the number of directly linked pages around the
	// current one.
	DefaultMaxLinks = 10
)

// PageWindow describes the pagination controls for one listing. Previous,
// Next, First and Last are 0 when the corresponding link should not be shown.
type PageWindow struct {
	CurrentPage int
	TotalPages  int
	Previous    int
	Next        int
	First       int
	Last        int
	PageNumbers []int
}

// New returns the page window for currentPage of a listing with totalCount
// items, using the default page size and link count.
func New(currentPage, totalCount int) *PageWindow {
	return Paginate(currentPage, totalCount, DefaultPageSize, DefaultMaxLinks)
}

// Paginate computes the page window. currentPage is clamped into the valid
// range. Returns nil when there is nothing to paginate. Near the first and
// last page the window of page numbers is shorter than maxLinks; it is never
// padded out to a fixed width.
func Paginate(currentPage, totalCount, pageSize, maxLinks int) *PageWindow {
	totalPages := (totalCount + pageSize - 1) / pageSize
	if totalPages < 1 {
		return nil
	}
	currentPage = min(max(currentPage, 1), totalPages)

	w := &PageWindow{
		CurrentPage: currentPage,
		TotalPages:  totalPages,
	}
	if currentPage-1 >= 1 {
		w.Previous = currentPage - 1
	}
	if currentPage+1 <= totalPages {
		w.Next = currentPage + 1
	}
	if currentPage != 1 {
		w.First = 1
	}
	if currentPage != totalPages {
		w.Last = totalPages
	}

	if totalPages <= maxLinks+1 {
		for n := 1; n <= totalPages; n++ {
			w.PageNumbers = append(w.PageNumbers, n)
		}
		return w
	}
	for n := currentPage - maxLinks/2; n < currentPage; n++ {
		if n > 0 {
			w.PageNumbers = append(w.PageNumbers, n)
		}
	}
	w.PageNumbers = append(w.PageNumbers, currentPage)
	for n := currentPage + 1; n <= currentPage+maxLinks/2; n++ {
		if n <= totalPages {
			w.PageNumbers = append(w.PageNumbers, n)
		}
	}
	return w
}

// Slice returns the half-open index range [low, high) of the items that
// belong on the window's current page, clipped to length.
func (w *PageWindow) Slice(length, pageSize int) (int, int) {
	if w == nil {
		return 0, 0
	}
	low := pageSize * (w.CurrentPage - 1)
	high := pageSize * w.CurrentPage
	if low > length {
		low = length
	}
	if high > length {
		high = length
	}
	return low, high
}
