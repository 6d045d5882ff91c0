package orders

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/stanleymf/order-to-do-app-sub000/internal/shopify"
	"github.com/stanleymf/order-to-do-app-sub000/internal/tagparse"
	"github.com/stanleymf/order-to-do-app-sub000/pkg/db/models"
	"github.com/stanleymf/order-to-do-app-sub000/pkg/enums"
)

const (
	// DefaultTimeslot is substituted when no tag yields a time range.
	DefaultTimeslot = "10:00 AM - 02:00 PM"

	// Placeholder labels written by the mapper; the product-sync join
	// backfills the real values from the store's catalog.
	placeholderDifficulty  = "Medium"
	placeholderProductType = "Bouquet"
)

var instructionKeywords = []string{"instruction", "note", "special"}

var reservedPropertyKeywords = []string{"delivery", "time", "instruction", "note", "special"}

// Mapper turns raw Shopify orders into canonical Order rows. It is a pure
// transformation: the same input always yields the same row, and it never
// touches the clock. StoreID is left empty for the calling sync routine —
// the mapper stays store-agnostic.
type Mapper struct {
	parser *tagparse.Parser
}

// NewMapper builds a mapper around the given tag parser (which may carry
// per-store pattern overrides).
func NewMapper(parser *tagparse.Parser) *Mapper {
	if parser == nil {
		parser = tagparse.New()
	}
	return &Mapper{parser: parser}
}

// Map converts one raw Shopify order. Only the first line item is read;
// multi-item orders lose everything past it. That is a deliberate
// simplification carried over from the stores' single-product workflow.
func (m *Mapper) Map(raw shopify.Order) models.Order {
	order := models.Order{
		ID:                    strings.TrimPrefix(raw.Name, "#"),
		ShopifyID:             strconv.FormatInt(raw.ID, 10),
		TotalPrice:            raw.TotalPrice,
		Status:                enums.OrderStatusPending,
		DifficultyLabel:       placeholderDifficulty,
		ProductTypeLabel:      placeholderProductType,
		Timeslot:              DefaultTimeslot,
		DeliveryType:          enums.DeliveryTypeDelivery,
		Date:                  raw.CreatedAt.Format("2006-01-02"),
		Remarks:               "",
		ProductCustomizations: "",
	}

	var instruction string
	if len(raw.LineItems) > 0 {
		item := raw.LineItems[0]
		order.ProductName = item.Title
		order.ProductVariant = item.VariantTitle
		instruction, order.ProductCustomizations = ExtractProperties(item.Properties)
	}

	extracted := m.parser.ParseTagString(raw.Tags)
	if extracted.Date != "" {
		order.Date = extracted.Date
	}
	if extracted.Timeslot != "" {
		order.Timeslot = extracted.Timeslot
	}
	if extracted.DeliveryType != "" {
		order.DeliveryType = extracted.DeliveryType
	}

	if instruction != "" {
		order.Remarks = instruction
	} else if note := instructionFromNote(raw.Note); note != "" {
		order.Remarks = note
	}

	return order
}

// ExtractProperties splits a line item's properties into the special
// instruction (first property whose name contains an instruction keyword)
// and the customization string ("Name: Value" pairs, comma-joined, in the
// order the properties were given). Reserved delivery/time keys are dropped
// from customizations.
func ExtractProperties(properties []shopify.LineItemProperty) (instruction, customizations string) {
	var parts []string
	for _, prop := range properties {
		lowered := strings.ToLower(prop.Name)
		if instruction == "" && containsAny(lowered, instructionKeywords) {
			instruction = prop.Value
		}
		if !containsAny(lowered, reservedPropertyKeywords) {
			parts = append(parts, fmt.Sprintf("%s: %s", prop.Name, prop.Value))
		}
	}
	return instruction, strings.Join(parts, ", ")
}

// instructionFromNote returns the first line of a multi-line order note
// that contains an instruction keyword, or empty.
func instructionFromNote(note string) string {
	if note == "" {
		return ""
	}
	for _, line := range strings.Split(note, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if containsAny(strings.ToLower(line), instructionKeywords) {
			return line
		}
	}
	return ""
}

func containsAny(value string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(value, keyword) {
			return true
		}
	}
	return false
}
