package products

import (
	"strings"

	"github.com/stanleymf/order-to-do-app-sub000/pkg/db/models"
	"github.com/stanleymf/order-to-do-app-sub000/pkg/enums"
)

// InferLabels scans a product's tags for names matching the configured
// labels, case-insensitively. The first tag matching a label of each
// category wins; an empty string means no tag matched and the caller keeps
// its default.
func InferLabels(tags []string, labels []models.ProductLabel) (difficulty, productType string) {
	byName := make(map[string]models.ProductLabel, len(labels))
	for _, label := range labels {
		byName[strings.ToLower(label.Name)] = label
	}
	for _, tag := range tags {
		label, ok := byName[strings.ToLower(strings.TrimSpace(tag))]
		if !ok {
			continue
		}
		switch label.Category {
		case enums.LabelCategoryDifficulty:
			if difficulty == "" {
				difficulty = label.Name
			}
		case enums.LabelCategoryProductType:
			if productType == "" {
				productType = label.Name
			}
		}
	}
	return difficulty, productType
}
