package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/marcosovalle/shopfront-backend/internal/catalog"
	"github.com/marcosovalle/shopfront-backend/internal/collections"
	"github.com/marcosovalle/shopfront-backend/pkg/config"
)

// User is the upstream profile resource.
type User struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Company string `json:"company,omitempty"`
}

// Review is one product review as served upstream.
type Review struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Author    string    `json:"author"`
	Rating    float64   `json:"rating"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// OrderItem is one checkout line sent upstream.
type OrderItem struct {
	ProductID string              `json:"product_id"`
	Quantity  int                 `json:"quantity"`
	Variant   collections.Variant `json:"variant,omitempty"`
}

// OrderInput is the checkout payload.
type OrderInput struct {
	Items []OrderItem `json:"items"`
}

// Order is the upstream order confirmation.
type Order struct {
	ID     string          `json:"id"`
	Status string          `json:"status"`
	Total  decimal.Decimal `json:"total"`
}

// Client talks to the remote product/order/auth API. It carries no retry or
// backoff: the caller decides how a failed call degrades.
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a client for the configured upstream base URL.
func New(cfg config.UpstreamConfig) (*Client, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		return nil, fmt.Errorf("upstream base url is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: base,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// ListProducts fetches the full product catalog.
func (c *Client) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := c.getJSON(ctx, "/products", "", &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []catalog.Product{}
	}
	return products, nil
}

// GetProduct fetches one product; a 404 maps to catalog.ErrProductNotFound.
func (c *Client) GetProduct(ctx context.Context, id string) (catalog.Product, error) {
	var product catalog.Product
	err := c.getJSON(ctx, "/products/"+url.PathEscape(id), "", &product)
	if err != nil {
		if isStatus(err, http.StatusNotFound) {
			return catalog.Product{}, catalog.ErrProductNotFound
		}
		return catalog.Product{}, err
	}
	return product, nil
}

// ListReviews fetches the reviews for one product.
func (c *Client) ListReviews(ctx context.Context, productID string) ([]Review, error) {
	var reviews []Review
	if err := c.getJSON(ctx, "/products/"+url.PathEscape(productID)+"/reviews", "", &reviews); err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []Review{}
	}
	return reviews, nil
}

// ValidateToken asks the auth API whether the token is still good. A 401 or
// 403 is a definitive "no", not an error.
func (c *Client) ValidateToken(ctx context.Context, token string) (bool, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/auth/validate", token, nil)
	if err != nil {
		return false, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("validate token: %w", err)
	}
	defer drainAndClose(resp.Body)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return true, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return false, nil
	default:
		return false, &statusError{status: resp.StatusCode, path: "/auth/validate"}
	}
}

// GetProfile fetches the authenticated user's profile.
func (c *Client) GetProfile(ctx context.Context, token string) (User, error) {
	var user User
	if err := c.getJSON(ctx, "/auth/profile", token, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

// PlaceOrder submits the checkout payload and returns the confirmation.
func (c *Client) PlaceOrder(ctx context.Context, token string, input OrderInput) (Order, error) {
	if len(input.Items) == 0 {
		return Order{}, fmt.Errorf("order must contain at least one item")
	}
	body, err := json.Marshal(input)
	if err != nil {
		return Order{}, fmt.Errorf("encode order: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/orders", token, bytes.NewReader(body))
	if err != nil {
		return Order{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Order{}, fmt.Errorf("place order: %w", err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Order{}, &statusError{status: resp.StatusCode, path: "/orders"}
	}

	var order Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return Order{}, fmt.Errorf("decode order response: %w", err)
	}
	return order, nil
}

func (c *Client) getJSON(ctx context.Context, path, token string, dest any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &statusError{status: resp.StatusCode, path: path}
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path, token string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

type statusError struct {
	status int
	path   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("upstream %s returned status %d", e.path, e.status)
}

func isStatus(err error, status int) bool {
	typed, ok := err.(*statusError)
	return ok && typed.status == status
}

func drainAndClose(body io.ReadCloser) {
	io.Copy(io.Discard, body)
	body.Close()
}
