// Package shopify is a thin client for the Shopify REST Admin API. The API
// is consumed as a black-box JSON service; errors carry a status-keyed hint
// so the dashboard can tell staff what to fix.
package shopify

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/stanleymf/order-to-do-app-sub000/pkg/errors"
)

const accessTokenHeader = "X-Shopify-Access-Token"

// Credentials identify one Shopify shop.
type Credentials struct {
	ShopDomain  string
	AccessToken string
	APIVersion  string
}

// Client calls the Shopify REST Admin API for a single shop.
type Client struct {
	creds Credentials
	http  *http.Client
}

// NewClient builds a client for the given shop credentials.
func NewClient(creds Credentials, timeout time.Duration) (*Client, error) {
	if creds.ShopDomain == "" {
		return nil, fmt.Errorf("shop domain is required")
	}
	if creds.AccessToken == "" {
		return nil, fmt.Errorf("access token is required")
	}
	if creds.APIVersion == "" {
		return nil, fmt.Errorf("api version is required")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		creds: creds,
		http:  &http.Client{Timeout: timeout},
	}, nil
}

// OrdersParams narrow the orders listing.
type OrdersParams struct {
	CreatedAtMin *time.Time
	CreatedAtMax *time.Time
	Status       string
	Limit        int
}

// ListOrders fetches orders.json with the provided filters.
func (c *Client) ListOrders(ctx context.Context, params OrdersParams) ([]Order, error) {
	query := url.Values{}
	if params.CreatedAtMin != nil {
		query.Set("created_at_min", params.CreatedAtMin.UTC().Format(time.RFC3339))
	}
	if params.CreatedAtMax != nil {
		query.Set("created_at_max", params.CreatedAtMax.UTC().Format(time.RFC3339))
	}
	status := params.Status
	if status == "" {
		status = "any"
	}
	query.Set("status", status)
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}

	var envelope ordersEnvelope
	if err := c.do(ctx, http.MethodGet, "orders.json", query, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Orders, nil
}

// ListProducts fetches products.json.
func (c *Client) ListProducts(ctx context.Context, limit int) ([]Product, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var envelope productsEnvelope
	if err := c.do(ctx, http.MethodGet, "products.json", query, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Products, nil
}

// ListWebhooks fetches webhooks.json.
func (c *Client) ListWebhooks(ctx context.Context) ([]Webhook, error) {
	var envelope webhooksEnvelope
	if err := c.do(ctx, http.MethodGet, "webhooks.json", nil, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Webhooks, nil
}

// CreateWebhook registers a webhook subscription on the shop.
func (c *Client) CreateWebhook(ctx context.Context, topic, address string) (*Webhook, error) {
	body := map[string]any{
		"webhook": map[string]any{
			"topic":   topic,
			"address": address,
			"format":  "json",
		},
	}
	var envelope webhookEnvelope
	if err := c.do(ctx, http.MethodPost, "webhooks.json", nil, body, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Webhook, nil
}

// DeleteWebhook removes a webhook subscription.
func (c *Client) DeleteWebhook(ctx context.Context, id int64) error {
	path := fmt.Sprintf("webhooks/%d.json", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, dest any) error {
	endpoint := fmt.Sprintf("https://%s/admin/api/%s/%s", c.creds.ShopDomain, c.creds.APIVersion, path)
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode shopify request")
		}
		reader = strings.NewReader(string(encoded))
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build shopify request")
	}
	req.Header.Set(accessTokenHeader, c.creds.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "call shopify api")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return statusError(resp.StatusCode, c.creds.ShopDomain, string(snippet))
	}

	if dest == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode shopify response")
	}
	return nil
}

// statusError turns a Shopify HTTP status into a dependency error with a
// user-facing hint keyed by the status code.
func statusError(status int, domain, body string) error {
	hint := StatusHint(status)
	err := pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("shopify api returned %d", status))
	return err.WithDetails(map[string]any{
		"status": status,
		"domain": domain,
		"hint":   hint,
		"body":   strings.TrimSpace(body),
	})
}

// StatusHint maps Shopify HTTP statuses to a hint staff can act on.
func StatusHint(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return "access token is invalid or expired; check the store's API credentials"
	case http.StatusForbidden:
		return "access token lacks the required API scopes"
	case http.StatusNotFound:
		return "shop domain or API version looks misconfigured"
	case http.StatusTooManyRequests:
		return "shopify rate limit hit; sync will retry on the next cycle"
	default:
		return "unexpected response from shopify"
	}
}

// VerifyWebhookSignature checks the HMAC-SHA256 Shopify computes over the
// raw request body. Shopify sends the digest base64-encoded.
func VerifyWebhookSignature(payload []byte, secret, header string) bool {
	if header == "" || secret == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(header))
}
