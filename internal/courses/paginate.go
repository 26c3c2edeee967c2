package courses

// DefaultPageSize is the number of courses shown per page.
const DefaultPageSize = 5

// PageCount returns ceil(n/size) for n items at the given page size.
func PageCount(n, size int) int {
	if size <= 0 || n <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Page returns the 1-based page of entries for the given page size. Pages
// outside the valid range are empty; the concatenation of all pages in order
// reproduces the input exactly once each.
func Page(entries []Entry, page, size int) []Entry {
	if size <= 0 || page < 1 {
		return nil
	}

	start := (page - 1) * size
	if start >= len(entries) {
		return nil
	}

	end := start + size
	if end > len(entries) {
		end = len(entries)
	}

	return entries[start:end]
}

// Pager tracks the current page over a filtered view. Changing the filter
// resets the pager to page 1.
type Pager struct {
	page   int
	size   int
	filter string
}

// NewPager creates a pager at page 1 with the given page size.
func NewPager(size int) *Pager {
	if size <= 0 {
		size = DefaultPageSize
	}
	return &Pager{page: 1, size: size}
}

// SetFilter installs a filter key. A change of key resets to page 1.
func (p *Pager) SetFilter(key string) {
	if p.filter != key {
		p.filter = key
		p.page = 1
	}
}

// Current returns the current 1-based page index.
func (p *Pager) Current() int {
	return p.page
}

// Next advances to the next page if one exists for n items.
func (p *Pager) Next(n int) {
	if p.page < PageCount(n, p.size) {
		p.page++
	}
}

// Prev moves to the previous page if not already at the first.
func (p *Pager) Prev() {
	if p.page > 1 {
		p.page--
	}
}

// Slice returns the entries of the current page, clamping the page index
// when the collection shrank below it.
func (p *Pager) Slice(entries []Entry) []Entry {
	if count := PageCount(len(entries), p.size); p.page > count && count > 0 {
		p.page = count
	}
	return Page(entries, p.page, p.size)
}
