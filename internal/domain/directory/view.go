package directory

// View is one displayable page of the filtered collection.
type View struct {
	Records    []Employee
	Page       int
	TotalPages int
	Filtered   int
	Total      int
}

// BuildView derives the visible page from the full collection: filter first,
// then clamp the page against the filtered count, then slice. The page state
// is updated in place so repeated builds stay consistent.
func BuildView(records []Employee, filters FilterSet, page *PageState) View {
	filtered := ApplyFilters(records, filters)
	visible := page.Slice(filtered)
	return View{
		Records:    visible,
		Page:       page.Current,
		TotalPages: TotalPages(len(filtered), page.Size),
		Filtered:   len(filtered),
		Total:      len(records),
	}
}
