package shopify

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order mirrors the subset of the Shopify REST order payload the mapper
// reads. Tags arrive as one comma-separated string.
type Order struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Note       string          `json:"note"`
	Tags       string          `json:"tags"`
	TotalPrice decimal.Decimal `json:"total_price"`
	CreatedAt  time.Time       `json:"created_at"`
	LineItems  []LineItem      `json:"line_items"`
}

// LineItem is one product entry within an order.
type LineItem struct {
	ID           int64              `json:"id"`
	ProductID    int64              `json:"product_id"`
	Title        string             `json:"title"`
	VariantTitle string             `json:"variant_title"`
	Quantity     int                `json:"quantity"`
	Properties   []LineItemProperty `json:"properties"`
}

// LineItemProperty is a free-form name/value pair attached at checkout.
type LineItemProperty struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Product mirrors the subset of the REST product payload used for label
// extraction.
type Product struct {
	ID       int64     `json:"id"`
	Title    string    `json:"title"`
	Tags     string    `json:"tags"`
	Variants []Variant `json:"variants"`
}

// Variant is a product variant; only the title is used.
type Variant struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// Webhook mirrors the REST webhook resource.
type Webhook struct {
	ID      int64  `json:"id"`
	Topic   string `json:"topic"`
	Address string `json:"address"`
	Format  string `json:"format"`
}

type ordersEnvelope struct {
	Orders []Order `json:"orders"`
}

type productsEnvelope struct {
	Products []Product `json:"products"`
}

type webhooksEnvelope struct {
	Webhooks []Webhook `json:"webhooks"`
}

type webhookEnvelope struct {
	Webhook Webhook `json:"webhook"`
}
