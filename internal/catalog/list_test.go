package catalog

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/weaponlions/ecommerce-server/pkg/db/models"
	"github.com/weaponlions/ecommerce-server/pkg/enums"
	"github.com/weaponlions/ecommerce-server/pkg/pagination"
)

func makeCandidate(name string, opts ...func(*models.Product)) candidate {
	product := models.Product{
		ID:        uuid.New(),
		Name:      name,
		Price:     decimal.NewFromInt(10),
		IsVisible: true,
		Stock:     models.StockUnlimited,
	}
	for _, opt := range opts {
		opt(&product)
	}
	return newCandidate(product)
}

func withPrice(v string) func(*models.Product) {
	return func(p *models.Product) { p.Price = decimal.RequireFromString(v) }
}

func withBadge(badge string) func(*models.Product) {
	return func(p *models.Product) { p.Badge = &badge }
}

func withValue(attrName, value string) func(*models.Product) {
	return func(p *models.Product) {
		p.AttributeValues = append(p.AttributeValues, models.ProductAttributeValue{
			CategoryAttribute: models.CategoryAttribute{Name: attrName},
			Value:             value,
		})
	}
}

func names(candidates []candidate) []string {
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.product.Name)
	}
	return out
}

func TestApplyFiltersSearchTokensAndAcrossFieldsOr(t *testing.T) {
	candidates := []candidate{
		makeCandidate("Trail Running Shoe", func(p *models.Product) { p.Description = "lightweight mesh upper" }),
		makeCandidate("Road Shoe", func(p *models.Product) { p.CategoryLabel = "Running" }),
		makeCandidate("Hiking Boot", withBadge("trail ready")),
	}

	// Both tokens must match, each in any field.
	got := applyFilters(candidates, ListQuery{Search: "trail shoe"}, nil)
	if len(got) != 1 || got[0].product.Name != "Trail Running Shoe" {
		t.Fatalf("expected only the trail shoe, got %v", names(got))
	}

	// A single token matches across name, category label and badge.
	got = applyFilters(candidates, ListQuery{Search: "RUNNING"}, nil)
	if len(got) != 2 {
		t.Fatalf("expected two running matches, got %v", names(got))
	}
}

func TestApplyFiltersAttributeScalarAndMultiSelect(t *testing.T) {
	candidates := []candidate{
		makeCandidate("Red Tee", withValue("color", "Red")),
		makeCandidate("Multi Tee", withValue("color", `["Red","Blue"]`)),
		makeCandidate("Blue Tee", withValue("color", "Blue")),
		makeCandidate("No Color Tee"),
	}

	got := applyFilters(candidates, ListQuery{Attributes: map[string]string{"Color": "red"}}, nil)
	if len(got) != 2 {
		t.Fatalf("expected scalar and multi-select matches, got %v", names(got))
	}
	for _, c := range got {
		if c.product.Name == "Blue Tee" || c.product.Name == "No Color Tee" {
			t.Fatalf("unexpected match %q", c.product.Name)
		}
	}
}

func TestApplyFiltersPriceRangeAndCollectionMembership(t *testing.T) {
	cheap := makeCandidate("Cheap", withPrice("5.00"))
	mid := makeCandidate("Mid", withPrice("25.00"))
	dear := makeCandidate("Dear", withPrice("99.99"))
	candidates := []candidate{cheap, mid, dear}

	minPrice := decimal.RequireFromString("10")
	maxPrice := decimal.RequireFromString("50")
	got := applyFilters(candidates, ListQuery{MinPrice: &minPrice, MaxPrice: &maxPrice}, nil)
	if len(got) != 1 || got[0].product.Name != "Mid" {
		t.Fatalf("expected only Mid in range, got %v", names(got))
	}

	members := map[uuid.UUID]struct{}{dear.product.ID: {}}
	got = applyFilters(candidates, ListQuery{}, members)
	if len(got) != 1 || got[0].product.Name != "Dear" {
		t.Fatalf("expected membership filter to keep Dear, got %v", names(got))
	}

	// An empty membership set means the collection exists but has no products.
	got = applyFilters(candidates, ListQuery{}, map[uuid.UUID]struct{}{})
	if len(got) != 0 {
		t.Fatalf("expected empty result for empty collection, got %v", names(got))
	}
}

func TestSortCandidates(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	a := makeCandidate("alpha", withPrice("30"), func(p *models.Product) {
		p.Rating = 3.5
		p.TrendingScore = 10
		p.CreatedAt = base
	})
	b := makeCandidate("Bravo", withPrice("10"), func(p *models.Product) {
		p.Rating = 5
		p.TrendingScore = 90
		p.CreatedAt = base.Add(48 * time.Hour)
	})
	c := makeCandidate("charlie", withPrice("20"), func(p *models.Product) {
		p.Rating = 4.2
		p.TrendingScore = 40
		p.CreatedAt = base.Add(24 * time.Hour)
	})

	tests := []struct {
		name       string
		key        enums.ProductSort
		descending bool
		want       []string
	}{
		{"price ascending", enums.ProductSortPrice, false, []string{"Bravo", "charlie", "alpha"}},
		{"price descending", enums.ProductSortPrice, true, []string{"alpha", "charlie", "Bravo"}},
		{"name case insensitive", enums.ProductSortName, false, []string{"alpha", "Bravo", "charlie"}},
		{"rating descending", enums.ProductSortRating, true, []string{"Bravo", "charlie", "alpha"}},
		{"newest ignores direction flag", enums.ProductSortNewest, false, []string{"Bravo", "charlie", "alpha"}},
		{"unknown falls back to trending", enums.ProductSort("popularity"), false, []string{"Bravo", "charlie", "alpha"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			candidates := []candidate{a, b, c}
			sortCandidates(candidates, tc.key, tc.descending)
			got := names(candidates)
			for i := range tc.want {
				if got[i] != tc.want[i] {
					t.Fatalf("order mismatch: got %v, want %v", got, tc.want)
				}
			}
		})
	}
}

func TestPaginateTotalsAndOutOfRange(t *testing.T) {
	candidates := make([]candidate, 0, 5)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		candidates = append(candidates, makeCandidate(name))
	}

	items, total := paginate(candidates, pagination.Params{Page: 2, PageSize: 2})
	if total != 5 {
		t.Fatalf("expected total 5, got %d", total)
	}
	if got := names(items); len(got) != 2 || got[0] != "c" || got[1] != "d" {
		t.Fatalf("unexpected page items %v", got)
	}

	// Last partial page.
	items, total = paginate(candidates, pagination.Params{Page: 3, PageSize: 2})
	if total != 5 || len(items) != 1 || items[0].product.Name != "e" {
		t.Fatalf("unexpected final page: total=%d items=%v", total, names(items))
	}

	// Out-of-range page keeps totals and returns no items.
	items, total = paginate(candidates, pagination.Params{Page: 9, PageSize: 2})
	if total != 5 || len(items) != 0 {
		t.Fatalf("expected empty out-of-range page with total 5, got total=%d items=%v", total, names(items))
	}
}
