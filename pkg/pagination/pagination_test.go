package pagination

import "testing"

func TestNormalizeClampsInputs(t *testing.T) {
	tests := []struct {
		name     string
		in       Params
		page     int
		pageSize int
	}{
		{name: "zero values", in: Params{}, page: 1, pageSize: DefaultPageSize},
		{name: "negative page", in: Params{Page: -3, PageSize: 10}, page: 1, pageSize: 10},
		{name: "oversized page size", in: Params{Page: 2, PageSize: 500}, page: 2, pageSize: MaxPageSize},
		{name: "in range", in: Params{Page: 4, PageSize: 24}, page: 4, pageSize: 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			if got.Page != tt.page || got.PageSize != tt.pageSize {
				t.Fatalf("got page=%d size=%d, want page=%d size=%d", got.Page, got.PageSize, tt.page, tt.pageSize)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	if got := (Params{Page: 3, PageSize: 10}).Offset(); got != 20 {
		t.Fatalf("expected offset 20, got %d", got)
	}
	if got := (Params{}).Offset(); got != 0 {
		t.Fatalf("expected offset 0, got %d", got)
	}
}

func TestNewPageComputesTotals(t *testing.T) {
	page := NewPage([]string{"a", "b"}, 11, Params{Page: 2, PageSize: 5})
	if page.TotalPages != 3 {
		t.Fatalf("expected 3 total pages, got %d", page.TotalPages)
	}
	if page.TotalCount != 11 || page.PageNumber != 2 || page.PageSize != 5 {
		t.Fatalf("unexpected page meta: %+v", page)
	}

	empty := NewPage([]string{}, 0, Params{})
	if empty.TotalPages != 0 {
		t.Fatalf("expected 0 total pages for empty set, got %d", empty.TotalPages)
	}
}
