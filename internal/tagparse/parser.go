// Package tagparse extracts structured delivery metadata from the free-form
// tags Shopify attaches to orders. Tags are processed in the order Shopify
// returns them and every rule is applied to every tag, so a later tag's
// match overwrites an earlier one (last-tag-wins). That mirrors the stores'
// established tagging workflow and is covered by tests as explicit policy.
package tagparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/stanleymf/order-to-do-app-sub000/pkg/enums"
)

// Extraction is the partial record produced from a set of order tags. A
// field left zero means no tag matched and the caller supplies the default.
type Extraction struct {
	Date         string
	Timeslot     string
	DeliveryType enums.DeliveryType
}

// Rule matches a single tag and, on success, writes one field of the
// extraction. Rules never error: a malformed tag simply fails to match.
type Rule struct {
	Name  string
	Apply func(tag string, out *Extraction) bool
}

// Parser runs an ordered rule list over order tags. The built-in rules and
// any store-configured pattern overrides share this one execution path.
type Parser struct {
	rules []Rule
}

// Options carry per-store pattern overrides. Empty or invalid patterns fall
// back to the built-in ones.
type Options struct {
	DateTagPattern     string
	TimeslotTagPattern string
}

var (
	datePattern = regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})`)

	slot24hPattern   = regexp.MustCompile(`(\d{1,2}):(\d{2})\s*-\s*(\d{1,2}):(\d{2})`)
	slot12hPattern   = regexp.MustCompile(`(?i)(\d{1,2})(?::(\d{2}))?\s*(am|pm)\s*-\s*(\d{1,2})(?::(\d{2}))?\s*(am|pm)`)
	slotShortPattern = regexp.MustCompile(`(?i)(\d{1,2})(am|pm)-(\d{1,2})(am|pm)`)
)

// New builds a parser with the default rule list.
func New() *Parser {
	return NewWithOptions(Options{})
}

// NewWithOptions builds a parser whose date/timeslot patterns may be
// overridden per store.
func NewWithOptions(opts Options) *Parser {
	dateRe := datePattern
	if opts.DateTagPattern != "" {
		if re, err := regexp.Compile(opts.DateTagPattern); err == nil && re.NumSubexp() >= 3 {
			dateRe = re
		}
	}
	slot24Re := slot24hPattern
	if opts.TimeslotTagPattern != "" {
		if re, err := regexp.Compile(opts.TimeslotTagPattern); err == nil && re.NumSubexp() >= 4 {
			slot24Re = re
		}
	}

	return &Parser{rules: []Rule{
		{Name: "delivery_type", Apply: applyDeliveryType},
		{Name: "date", Apply: dateRule(dateRe)},
		{Name: "timeslot", Apply: timeslotRule(slot24Re)},
	}}
}

// Parse runs every rule over every tag. Fields not matched by any tag stay
// zero.
func (p *Parser) Parse(tags []string) Extraction {
	var out Extraction
	for _, tag := range tags {
		for _, rule := range p.rules {
			rule.Apply(tag, &out)
		}
	}
	return out
}

// SplitTagString splits a comma-separated tag string the way Shopify
// delivers it.
func SplitTagString(tags string) []string {
	parts := strings.Split(tags, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// ParseTagString splits and parses a raw tag string.
func (p *Parser) ParseTagString(tags string) Extraction {
	return p.Parse(SplitTagString(tags))
}

// applyDeliveryType matches the three keyword sets. Only one branch fires
// per tag, in this order; a tag containing both "express" and "delivery"
// resolves to delivery.
func applyDeliveryType(tag string, out *Extraction) bool {
	lowered := strings.ToLower(tag)
	switch {
	case strings.Contains(lowered, "delivery") || strings.Contains(lowered, "deliver"):
		out.DeliveryType = enums.DeliveryTypeDelivery
	case strings.Contains(lowered, "collection") || strings.Contains(lowered, "pickup") || strings.Contains(lowered, "collect"):
		out.DeliveryType = enums.DeliveryTypeCollection
	case strings.Contains(lowered, "express") || strings.Contains(lowered, "urgent") || strings.Contains(lowered, "rush"):
		out.DeliveryType = enums.DeliveryTypeExpress
	default:
		return false
	}
	return true
}

// dateRule reads matches unconditionally as day/month/year. Two-digit years
// get the "20" century prefix.
func dateRule(re *regexp.Regexp) func(string, *Extraction) bool {
	return func(tag string, out *Extraction) bool {
		match := re.FindStringSubmatch(tag)
		if match == nil {
			return false
		}
		day, err := strconv.Atoi(match[1])
		if err != nil {
			return false
		}
		month, err := strconv.Atoi(match[2])
		if err != nil {
			return false
		}
		year := match[3]
		if len(year) == 2 {
			year = "20" + year
		}
		out.Date = fmt.Sprintf("%s-%02d-%02d", year, month, day)
		return true
	}
}

// timeslotRule tries the 24-hour range first, then the 12-hour range, then
// the short hAM-hPM form. The first pattern that matches a tag sets the
// field.
func timeslotRule(slot24Re *regexp.Regexp) func(string, *Extraction) bool {
	return func(tag string, out *Extraction) bool {
		if match := slot24Re.FindStringSubmatch(tag); match != nil {
			startHour, _ := strconv.Atoi(match[1])
			endHour, _ := strconv.Atoi(match[3])
			if startHour < 24 && endHour < 24 {
				out.Timeslot = fmt.Sprintf("%s - %s",
					to12Hour(startHour, match[2]),
					to12Hour(endHour, match[4]),
				)
				return true
			}
		}
		if match := slot12hPattern.FindStringSubmatch(tag); match != nil {
			out.Timeslot = fmt.Sprintf("%s - %s",
				formatMeridiem(match[1], match[2], match[3]),
				formatMeridiem(match[4], match[5], match[6]),
			)
			return true
		}
		if match := slotShortPattern.FindStringSubmatch(tag); match != nil {
			out.Timeslot = fmt.Sprintf("%s - %s",
				formatMeridiem(match[1], "", match[2]),
				formatMeridiem(match[3], "", match[4]),
			)
			return true
		}
		return false
	}
}

func to12Hour(hour int, minutes string) string {
	meridiem := "AM"
	display := hour
	switch {
	case hour == 0:
		display = 12
	case hour == 12:
		meridiem = "PM"
	case hour > 12:
		display = hour - 12
		meridiem = "PM"
	}
	return fmt.Sprintf("%d:%s %s", display, minutes, meridiem)
}

func formatMeridiem(hour, minutes, meridiem string) string {
	if minutes == "" {
		minutes = "00"
	}
	h, _ := strconv.Atoi(hour)
	return fmt.Sprintf("%d:%s %s", h, minutes, strings.ToUpper(meridiem))
}
