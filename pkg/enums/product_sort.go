package enums

import "strings"

// ProductSort names the supported orderings of a product listing.
type ProductSort string

const (
	ProductSortTrending ProductSort = "trending"
	ProductSortPrice    ProductSort = "price"
	ProductSortName     ProductSort = "name"
	ProductSortRating   ProductSort = "rating"
	ProductSortNewest   ProductSort = "newest"
)

// ParseProductSort converts raw input into a ProductSort. Unknown or empty
// values fall back to trending rather than failing, so a stale query string
// never breaks the listing page.
func ParseProductSort(value string) ProductSort {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "price":
		return ProductSortPrice
	case "name":
		return ProductSortName
	case "rating":
		return ProductSortRating
	case "newest":
		return ProductSortNewest
	default:
		return ProductSortTrending
	}
}

// String implements fmt.Stringer.
func (s ProductSort) String() string {
	return string(s)
}
