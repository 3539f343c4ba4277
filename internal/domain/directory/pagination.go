package directory

// DefaultPageSize matches the page size of the directory table view.
const DefaultPageSize = 10

// PageState tracks the current page over a filtered record set. Pages are
// 1-indexed and always kept inside [1, TotalPages] as the filtered count
// changes.
type PageState struct {
	Current int
	Size    int
}

func NewPageState(size int) PageState {
	if size <= 0 {
		size = DefaultPageSize
	}
	return PageState{Current: 1, Size: size}
}

// TotalPages is always at least 1, even for an empty collection.
func TotalPages(count, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	pages := (count + pageSize - 1) / pageSize
	if pages < 1 {
		pages = 1
	}
	return pages
}

// Clamp pulls the current page back into range for the given filtered count.
// Clamping is idempotent.
func (p *PageState) Clamp(count int) {
	total := TotalPages(count, p.Size)
	if p.Current > total {
		p.Current = total
	}
	if p.Current < 1 {
		p.Current = 1
	}
}

// Reset returns to the first page. Any filter change starts the walk over.
func (p *PageState) Reset() {
	p.Current = 1
}

// Slice returns the records visible on the current page. The state is
// clamped against len(records) first, so a stale page never yields an
// out-of-range slice.
func (p *PageState) Slice(records []Employee) []Employee {
	p.Clamp(len(records))
	start := (p.Current - 1) * p.Size
	if start >= len(records) {
		return nil
	}
	end := start + p.Size
	if end > len(records) {
		end = len(records)
	}
	return records[start:end]
}
