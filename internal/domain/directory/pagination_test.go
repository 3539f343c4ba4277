package directory

import (
	"fmt"
	"testing"
)

func makeRecords(n int) []Employee {
	out := make([]Employee, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, Employee{
			ID:           int64(i),
			FirstName:    fmt.Sprintf("NAME%d", i),
			FirstSurname: fmt.Sprintf("SURNAME%d", i),
		})
	}
	return out
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		count, pageSize, want int
	}{
		{0, 10, 1},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{23, 10, 3},
		{5, 10, 1},
	}
	for _, tc := range cases {
		if got := TotalPages(tc.count, tc.pageSize); got != tc.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tc.count, tc.pageSize, got, tc.want)
		}
	}
}

func TestPageSlicesPartitionTheCollection(t *testing.T) {
	records := makeRecords(23)
	page := NewPageState(10)

	total := 0
	seen := make(map[int64]bool)
	for p := 1; p <= TotalPages(len(records), page.Size); p++ {
		page.Current = p
		slice := page.Slice(records)
		if len(slice) > page.Size {
			t.Fatalf("page %d has %d records, page size is %d", p, len(slice), page.Size)
		}
		total += len(slice)
		for _, emp := range slice {
			if seen[emp.ID] {
				t.Fatalf("record %d appears on more than one page", emp.ID)
			}
			seen[emp.ID] = true
		}
	}
	if total != len(records) {
		t.Fatalf("page slices cover %d records, want %d", total, len(records))
	}
}

func TestClampAfterShrinkingFilter(t *testing.T) {
	page := NewPageState(10)
	page.Current = 3

	// 23 filtered records: page 3 is valid.
	page.Clamp(23)
	if page.Current != 3 {
		t.Fatalf("page = %d, want 3", page.Current)
	}

	// The filter narrows to 5 records: page 3 no longer exists.
	page.Clamp(5)
	if page.Current != 1 {
		t.Fatalf("page = %d, want 1 after clamp", page.Current)
	}

	// Clamping again changes nothing.
	page.Clamp(5)
	if page.Current != 1 {
		t.Fatalf("clamp is not idempotent, page = %d", page.Current)
	}
}

func TestStalePageNeverYieldsOutOfRangeSlice(t *testing.T) {
	records := makeRecords(5)
	page := NewPageState(10)
	page.Current = 3

	slice := page.Slice(records)
	if page.Current != 1 {
		t.Fatalf("page = %d, want 1", page.Current)
	}
	if len(slice) != 5 {
		t.Fatalf("slice has %d records, want 5", len(slice))
	}
}

func TestFilterChangeResetsToFirstPage(t *testing.T) {
	records := makeRecords(23)
	page := NewPageState(10)
	page.Current = 3

	// A new filter starts the walk over on page 1.
	page.Reset()
	filters := FilterSet{FirstName: "NAME1"}
	view := BuildView(records, filters, &page)

	// NAME1, NAME10..NAME19: 11 matches.
	if view.Filtered != 11 {
		t.Fatalf("filtered = %d, want 11", view.Filtered)
	}
	if view.Page != 1 {
		t.Fatalf("page = %d, want 1", view.Page)
	}
	if view.TotalPages != 2 {
		t.Fatalf("totalPages = %d, want 2", view.TotalPages)
	}
}

func TestBuildViewScenario(t *testing.T) {
	// 23 filtered records at page size 10 paginate into 3 pages; narrowing
	// to 5 records collapses to a single page and a reset current page.
	records := makeRecords(23)
	page := NewPageState(10)

	view := BuildView(records, FilterSet{}, &page)
	if view.TotalPages != 3 || view.Filtered != 23 {
		t.Fatalf("got %d pages over %d records, want 3 over 23", view.TotalPages, view.Filtered)
	}

	page.Current = 3
	view = BuildView(records, FilterSet{}, &page)
	if len(view.Records) != 3 {
		t.Fatalf("last page has %d records, want 3", len(view.Records))
	}

	page.Reset()
	narrowed := BuildView(records[:5], FilterSet{}, &page)
	if narrowed.TotalPages != 1 || narrowed.Page != 1 {
		t.Fatalf("narrowed view: page %d/%d, want 1/1", narrowed.Page, narrowed.TotalPages)
	}
}
