package catalog

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/weaponlions/ecommerce-server/pkg/db/models"
	"github.com/weaponlions/ecommerce-server/pkg/enums"
	"github.com/weaponlions/ecommerce-server/pkg/pagination"
)

// ListQuery carries every listing filter after the controller has parsed the
// query string.
type ListQuery struct {
	CategoryID   *uuid.UUID
	CategorySlug string
	CollectionID *uuid.UUID
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	Search       string
	Attributes   map[string]string
	Sort         enums.ProductSort
	Descending   bool
	Page         pagination.Params
}

// candidate pairs a product with its attribute values keyed by machine name,
// lower-cased once so filter evaluation stays cheap.
type candidate struct {
	product models.Product
	values  map[string]string
}

func newCandidate(product models.Product) candidate {
	values := make(map[string]string, len(product.AttributeValues))
	for _, row := range product.AttributeValues {
		values[strings.ToLower(row.CategoryAttribute.Name)] = row.Value
	}
	return candidate{product: product, values: values}
}

// applyFilters narrows the candidate set. Category and collection resolution
// happen in the caller; what arrives here is pure predicate work.
func applyFilters(candidates []candidate, query ListQuery, members map[uuid.UUID]struct{}) []candidate {
	tokens := searchTokens(query.Search)

	out := make([]candidate, 0, len(candidates))
	for _, c := range candidates {
		if query.CategoryID != nil {
			if c.product.CategoryID == nil || *c.product.CategoryID != *query.CategoryID {
				continue
			}
		}
		if members != nil {
			if _, ok := members[c.product.ID]; !ok {
				continue
			}
		}
		if query.MinPrice != nil && c.product.Price.LessThan(*query.MinPrice) {
			continue
		}
		if query.MaxPrice != nil && c.product.Price.GreaterThan(*query.MaxPrice) {
			continue
		}
		if len(tokens) > 0 && !matchesSearch(c.product, tokens) {
			continue
		}
		if !matchesAttributes(c.values, query.Attributes) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func searchTokens(search string) []string {
	return strings.Fields(strings.ToLower(strings.TrimSpace(search)))
}

// matchesSearch requires every token to appear in at least one searchable
// field. AND across tokens, OR across fields.
func matchesSearch(product models.Product, tokens []string) bool {
	fields := []string{
		strings.ToLower(product.Name),
		strings.ToLower(product.Description),
		strings.ToLower(product.CategoryLabel),
	}
	if product.Badge != nil {
		fields = append(fields, strings.ToLower(*product.Badge))
	}

	for _, token := range tokens {
		found := false
		for _, field := range fields {
			if strings.Contains(field, token) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// matchesAttributes requires every requested pair to match the stored value:
// exact case-insensitive equality, or membership when the stored value is a
// JSON string array.
func matchesAttributes(values map[string]string, filters map[string]string) bool {
	for name, wanted := range filters {
		stored, ok := values[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return false
		}
		if strings.EqualFold(stored, wanted) {
			continue
		}
		matched := false
		for _, entry := range decodeMultiValue(stored) {
			if strings.EqualFold(entry, wanted) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// sortCandidates orders the filtered set. Newest ignores the direction flag;
// unknown keys fall back to trending, always descending.
func sortCandidates(candidates []candidate, key enums.ProductSort, descending bool) {
	var less func(a, b models.Product) bool

	switch key {
	case enums.ProductSortPrice:
		less = func(a, b models.Product) bool { return a.Price.LessThan(b.Price) }
	case enums.ProductSortName:
		less = func(a, b models.Product) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	case enums.ProductSortRating:
		less = func(a, b models.Product) bool { return a.Rating < b.Rating }
	case enums.ProductSortNewest:
		descending = true
		less = func(a, b models.Product) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default:
		descending = true
		less = func(a, b models.Product) bool { return a.TrendingScore < b.TrendingScore }
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if descending {
			return less(candidates[j].product, candidates[i].product)
		}
		return less(candidates[i].product, candidates[j].product)
	})
}

// paginate slices the sorted set with totals computed first. An out-of-range
// page yields an empty item list with correct totals.
func paginate(candidates []candidate, params pagination.Params) ([]candidate, int) {
	total := len(candidates)
	params = params.Normalize()

	start := params.Offset()
	if start >= total {
		return nil, total
	}
	end := start + params.PageSize
	if end > total {
		end = total
	}
	return candidates[start:end], total
}
