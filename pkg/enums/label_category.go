package enums

import "fmt"

// LabelCategory distinguishes the two kinds of product labels.
type LabelCategory string

const (
	LabelCategoryDifficulty  LabelCategory = "difficulty"
	LabelCategoryProductType LabelCategory = "productType"
)

var validLabelCategories = []LabelCategory{
	LabelCategoryDifficulty,
	LabelCategoryProductType,
}

// DefaultLabelName returns the fixed fallback label for a category. Products
// and orders referencing a deleted label are rewritten to this name.
func (c LabelCategory) DefaultLabelName() string {
	if c == LabelCategoryProductType {
		return "Bouquet"
	}
	return "Easy"
}

// String implements fmt.Stringer.
func (c LabelCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known LabelCategory.
func (c LabelCategory) IsValid() bool {
	for _, candidate := range validLabelCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseLabelCategory converts raw input into a LabelCategory.
func ParseLabelCategory(value string) (LabelCategory, error) {
	for _, candidate := range validLabelCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid label category %q", value)
}
