package orders

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stanleymf/order-to-do-app-sub000/pkg/db/models"
	"github.com/stanleymf/order-to-do-app-sub000/pkg/enums"
)

const unrankedPriority = 9999

// Filters narrow a day's orders before sorting. All predicates combine
// with AND; zero values are ignored.
type Filters struct {
	StoreID          *uuid.UUID
	Status           *enums.OrderStatus
	DifficultyLabel  string
	ProductTypeLabel string
	Search           string
}

// Filter applies the store/status/label predicates plus the case-insensitive
// substring search across the order's display fields.
func Filter(orders []models.Order, f Filters) []models.Order {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]models.Order, 0, len(orders))
	for _, order := range orders {
		if f.StoreID != nil && order.StoreID != *f.StoreID {
			continue
		}
		if f.Status != nil && order.Status != *f.Status {
			continue
		}
		if f.DifficultyLabel != "" && order.DifficultyLabel != f.DifficultyLabel {
			continue
		}
		if f.ProductTypeLabel != "" && order.ProductTypeLabel != f.ProductTypeLabel {
			continue
		}
		if search != "" && !matchesSearch(order, search) {
			continue
		}
		out = append(out, order)
	}
	return out
}

func matchesSearch(order models.Order, search string) bool {
	haystacks := []string{
		order.ProductName,
		order.ProductVariant,
		order.ID,
		order.Remarks,
		order.ProductCustomizations,
		order.DifficultyLabel,
		order.ProductTypeLabel,
		order.Timeslot,
		string(order.DeliveryType),
	}
	for _, value := range haystacks {
		if strings.Contains(strings.ToLower(value), search) {
			return true
		}
	}
	return false
}

// Sort orders the slice in place for florist display. The comparator has
// five levels, each only consulted when every level above it ties:
//
//  1. viewer's own assignments, then unassigned, then other florists
//  2. timeslot start time (unparsable slots last)
//  3. product name
//  4. difficulty label priority (unknown labels last)
//  5. product type label priority (unknown labels last)
//
// The sort is stable: full ties keep their input order.
func Sort(orders []models.Order, viewerFloristID *uuid.UUID, labels []models.ProductLabel) {
	difficulty := priorityLookup(labels, enums.LabelCategoryDifficulty)
	productType := priorityLookup(labels, enums.LabelCategoryProductType)

	sort.SliceStable(orders, func(i, j int) bool {
		a, b := orders[i], orders[j]

		ap, bp := floristPriority(a, viewerFloristID), floristPriority(b, viewerFloristID)
		if ap != bp {
			return ap < bp
		}

		am, bm := timeslotStartMinutes(a.Timeslot), timeslotStartMinutes(b.Timeslot)
		if am != bm {
			return am < bm
		}

		if a.ProductName != b.ProductName {
			return a.ProductName < b.ProductName
		}

		ad, bd := labelPriority(difficulty, a.DifficultyLabel), labelPriority(difficulty, b.DifficultyLabel)
		if ad != bd {
			return ad < bd
		}

		at, bt := labelPriority(productType, a.ProductTypeLabel), labelPriority(productType, b.ProductTypeLabel)
		return at < bt
	})
}

func floristPriority(order models.Order, viewer *uuid.UUID) int {
	switch {
	case order.AssignedFloristID == nil:
		return 2
	case viewer != nil && *order.AssignedFloristID == *viewer:
		return 1
	default:
		return 3
	}
}

func priorityLookup(labels []models.ProductLabel, category enums.LabelCategory) map[string]int {
	lookup := make(map[string]int)
	for _, label := range labels {
		if label.Category == category {
			lookup[label.Name] = label.Priority
		}
	}
	return lookup
}

func labelPriority(lookup map[string]int, name string) int {
	if priority, ok := lookup[name]; ok {
		return priority
	}
	return unrankedPriority
}

// timeslotStartMinutes parses the leading "h:mm AM/PM" of a slot string
// into minutes since midnight. Anything unparsable sorts last.
func timeslotStartMinutes(timeslot string) int {
	start, _, found := strings.Cut(timeslot, " - ")
	if !found {
		start = timeslot
	}
	parsed, err := time.Parse("3:04 PM", strings.TrimSpace(start))
	if err != nil {
		return unrankedPriority
	}
	return parsed.Hour()*60 + parsed.Minute()
}
