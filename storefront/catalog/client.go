// Package catalog is the storefront's HTTP client for the Demo Shop
// API: product and category reads, the admin price/stock update, and
// the order submission used by checkout.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"
)

// Product is the wire shape served by GET /api/products. The id stays
// a plain string so catalog entries (Mongo object ids) and finalized
// custom items (synthetic uuids) travel through the cart identically.
type Product struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	InStock     bool    `json:"inStock"`
}

// OrderLine is one entry of an order submission.
type OrderLine struct {
	ProductID    string  `json:"productId"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
	CustomCoffee any     `json:"customCoffee,omitempty"`
}

// OrderPayload is the POST /api/orders body.
type OrderPayload struct {
	Items       []OrderLine `json:"items"`
	TotalAmount float64     `json:"totalAmount"`
}

// OrderResponse is the success body of POST /api/orders.
type OrderResponse struct {
	Success bool   `json:"success"`
	OrderID string `json:"orderId"`
}

// StatusError reports a non-2xx response from the API.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed with status %d", e.Code)
}

type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// NewClient returns a catalog client for the given API base URL.
// httpClient may be nil, in which case http.DefaultClient is used; no
// client-side timeout is imposed, the caller's context governs.
func NewClient(baseURL string, httpClient *http.Client, log *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{baseURL: baseURL, http: httpClient, log: log}
}

// FetchProducts retrieves the full product list.
func (c *Client) FetchProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.getJSON(ctx, "/api/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// FetchCategories retrieves the category name list.
func (c *Client) FetchCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.getJSON(ctx, "/api/products/categories/all", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// FetchProduct retrieves a single product by id.
func (c *Client) FetchProduct(ctx context.Context, id string) (*Product, error) {
	var product Product
	if err := c.getJSON(ctx, "/api/products/"+url.PathEscape(id), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct sets price and stock status on a product (admin surface).
func (c *Client) UpdateProduct(ctx context.Context, id string, price float64, inStock bool) (*Product, error) {
	body, err := json.Marshal(map[string]any{"price": price, "inStock": inStock})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		c.baseURL+"/api/products/"+url.PathEscape(id), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var product Product
	if err := c.do(req, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// SubmitOrder posts an order. A non-2xx response is returned as a
// *StatusError; transport failures are returned as-is.
func (c *Client) SubmitOrder(ctx context.Context, payload OrderPayload) (*OrderResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var out OrderResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("Request transport error",
			zap.String("method", req.Method), zap.String("url", req.URL.String()), zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Debug("Request failed",
			zap.String("method", req.Method), zap.String("url", req.URL.String()), zap.Int("status", resp.StatusCode))
		return &StatusError{Code: resp.StatusCode}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
