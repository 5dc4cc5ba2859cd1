package pagination

const (
	// DefaultPageSize is the standard page size when one is not provided.
	DefaultPageSize = 12
	// MaxPageSize caps how many rows any listing can request per page.
	MaxPageSize = 100
)

// Params holds page-based pagination inputs from controllers or services.
type Params struct {
	Page     int
	PageSize int
}

// Normalize clamps the inputs to usable values: page floors at 1, page size
// falls back to the default and is capped at the maximum.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

// Offset returns the zero-based row offset for the normalized params.
func (p Params) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.PageSize
}

// Page is one page of results with the totals computed before slicing.
type Page[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"total_count"`
	PageNumber int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

// NewPage assembles a Page from an already-sliced item set.
func NewPage[T any](items []T, total int, params Params) Page[T] {
	n := params.Normalize()
	totalPages := 0
	if total > 0 {
		totalPages = (total + n.PageSize - 1) / n.PageSize
	}
	return Page[T]{
		Items:      items,
		TotalCount: total,
		PageNumber: n.Page,
		PageSize:   n.PageSize,
		TotalPages: totalPages,
	}
}
