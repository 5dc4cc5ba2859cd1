package enums

import (
	"fmt"
	"strings"
)

// MediaCategory groups uploaded assets by where they are used on the storefront.
// The category also determines the subdirectory an asset file is stored under.
type MediaCategory string

const (
	MediaCategoryCarousel   MediaCategory = "carousel"
	MediaCategoryProduct    MediaCategory = "product"
	MediaCategoryCollection MediaCategory = "collection"
	MediaCategoryCategory   MediaCategory = "category"
	MediaCategorySocialIcon MediaCategory = "social-icon"
	MediaCategoryGeneral    MediaCategory = "general"
)

var validMediaCategories = []MediaCategory{
	MediaCategoryCarousel,
	MediaCategoryProduct,
	MediaCategoryCollection,
	MediaCategoryCategory,
	MediaCategorySocialIcon,
	MediaCategoryGeneral,
}

// String implements fmt.Stringer.
func (c MediaCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known MediaCategory.
func (c MediaCategory) IsValid() bool {
	for _, candidate := range validMediaCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseMediaCategory converts raw input into a MediaCategory. Matching is
// case-insensitive; an empty value defaults to general.
func ParseMediaCategory(value string) (MediaCategory, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return MediaCategoryGeneral, nil
	}
	for _, candidate := range validMediaCategories {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid media category %q (valid: carousel, product, collection, category, social-icon, general)", value)
}
