package core

// Page is the container for one window of a paginated fetch. Callers
// supply Start and PageSize; the fetcher populates Total and Data in
// place and returns the same page.
type Page[T any] struct {
	Start    int
	PageSize int
	Total    int64
	Data     []T
}

// NewPage returns a page request for the window [start, start+size).
func NewPage[T any](start, size int) *Page[T] {
	return &Page[T]{Start: start, PageSize: size}
}
