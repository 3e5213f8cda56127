package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dashmarket/storefront/pkg/catalog"
)

const maxResponseBytes = 1 << 20

type Config struct {
	BaseURL string        `env:"BACKEND_URL" envDefault:"http://localhost:5000"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"10s"`
}

// Client talks to the storefront REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client. A zero timeout falls back to ten seconds.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// PurchaseRequest is the checkout payload.
type PurchaseRequest struct {
	DashboardIDs []string `json:"dashboardIds"`
	Total        int64    `json:"total"`
}

type PurchaseResponse struct {
	Message        string `json:"message,omitempty"`
	RemainingCoins *int64 `json:"remaining_coins,omitempty"`
}

// Login exchanges credentials for a token and role.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/login", "", req, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" || resp.Role == "" {
		return nil, errors.Join(ErrInvalidResponse, errors.New("login response lacks token or role"))
	}
	return &resp, nil
}

// Dashboards lists the catalog.
func (c *Client) Dashboards(ctx context.Context) ([]catalog.Dashboard, error) {
	var resp []catalog.Dashboard
	if err := c.do(ctx, http.MethodGet, "/dashboards", "", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Dashboard fetches one catalog entry.
func (c *Client) Dashboard(ctx context.Context, id string) (*catalog.Dashboard, error) {
	var resp catalog.Dashboard
	if err := c.do(ctx, http.MethodGet, "/dashboards/"+url.PathEscape(id), "", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Purchase submits a purchase on behalf of the token holder.
func (c *Client) Purchase(ctx context.Context, token string, req PurchaseRequest) (*PurchaseResponse, error) {
	var resp PurchaseResponse
	if err := c.do(ctx, http.MethodPost, "/purchase", token, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if in != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return errors.Join(ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return errors.Join(ErrUnavailable, fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp.StatusCode, respBody)
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return errors.Join(ErrInvalidResponse, err)
	}
	return nil
}

// statusError classifies a failed response. The API answers errors as
// {"message": "..."} or {"error": "..."}.
func statusError(code int, body []byte) error {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	_ = json.Unmarshal(body, &payload)

	msg := payload.Message
	if msg == "" {
		msg = payload.Error
	}
	se := &StatusError{Code: code, Message: msg}

	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return errors.Join(ErrUnauthorized, se)
	case code == http.StatusNotFound:
		return errors.Join(ErrNotFound, se)
	case code >= 500:
		return errors.Join(ErrUnavailable, se)
	default:
		return errors.Join(ErrRejected, se)
	}
}
