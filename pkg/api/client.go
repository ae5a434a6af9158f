package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to the storefront backend. The zero value is not usable; use
// New.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     *slog.Logger
}

// Config configures the backend client from the environment.
type Config struct {
	BaseURL string        `env:"STOREFRONT_API_URL" envDefault:"http://localhost:3001"`
	Timeout time.Duration `env:"STOREFRONT_API_TIMEOUT" envDefault:"30s"`
}

// New creates a backend client. The HTTP client is pooled and shared across
// requests; override it with WithHTTPClient for tests.
func New(baseURL string, opts ...Option) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

type authResponse struct {
	AccessToken string `json:"access_token"`
}

// Login exchanges an email/password pair for a bearer credential. The client
// does not decode or store it; that is the session manager's job.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}

	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &resp); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

// Register creates an account. The backend does not log the account in;
// callers follow up with Login.
func (c *Client) Register(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	return c.do(ctx, http.MethodPost, "/auth/register", body, nil)
}

// ProductsByCategory lists the products of one category.
func (c *Client) ProductsByCategory(ctx context.Context, category string) ([]Product, error) {
	var products []Product
	path := "/products/category/" + url.PathEscape(category)
	if err := c.do(ctx, http.MethodGet, path, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateProduct adds a catalog product. Requires a staff credential.
func (c *Client) CreateProduct(ctx context.Context, input ProductInput) (Product, error) {
	var product Product
	err := c.do(ctx, http.MethodPost, "/products", input, &product)
	return product, err
}

// UpdateProduct replaces a catalog product. Requires a staff credential.
func (c *Client) UpdateProduct(ctx context.Context, id string, input ProductInput) (Product, error) {
	var product Product
	err := c.do(ctx, http.MethodPut, "/products/"+url.PathEscape(id), input, &product)
	return product, err
}

// DeleteProduct removes a catalog product. Requires a staff credential.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), nil, nil)
}

// CreateOrder submits an order. The backend computes the total from the
// lines; the response carries the accepted order.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (Order, error) {
	var order Order
	err := c.do(ctx, http.MethodPost, "/orders", req, &order)
	return order, err
}

// MyOrders lists the authenticated user's orders, newest first.
func (c *Client) MyOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.do(ctx, http.MethodGet, "/orders/my", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Orders lists every order. Requires a staff credential.
func (c *Client) Orders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderStatus moves an order through its fulfilment states. Requires a
// staff credential.
func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status OrderStatus) error {
	body := map[string]OrderStatus{"status": status}
	return c.do(ctx, http.MethodPatch, "/orders/"+url.PathEscape(id)+"/status", body, nil)
}

// Users lists accounts. Requires an admin credential.
func (c *Client) Users(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.do(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// DeleteUser removes an account. Requires an admin credential.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil)
}

// UpdateUserRole changes an account's role. Requires an admin credential.
func (c *Client) UpdateUserRole(ctx context.Context, id string, role string) error {
	body := map[string]string{"role": role}
	return c.do(ctx, http.MethodPatch, "/users/"+url.PathEscape(id)+"/role", body, nil)
}

// do runs one request: marshal the body, attach the bearer credential when
// available, and decode either the success payload or the backend's error
// message.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Join(ErrRequestFailed, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token, ok := c.tokens.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Join(ErrRequestFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.decodeError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	// Bounded read: error bodies are small, and a misbehaving server must
	// not make the client buffer megabytes.
	data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err == nil && len(data) > 0 {
		var body struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &body) == nil {
			apiErr.Message = body.Message
		}
	}

	c.logger.Debug("api: backend error", "status", apiErr.StatusCode, "message", apiErr.Message)
	return apiErr
}
