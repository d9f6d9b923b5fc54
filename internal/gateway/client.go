// Package gateway is the HTTP client for the booking backend that owns
// durable state. Every operation returns the full authoritative booking
// record, never a diff; callers replace their local copy with it wholesale.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/godfreydekew/car-parking-crm/internal/domain"
	"github.com/godfreydekew/car-parking-crm/internal/domain/models"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges staff credentials for a bearer token. The gateway owns
// credential verification; nothing is checked locally.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResult, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/auth/login", strings.NewReader(form.Encode()))
	if err != nil {
		return LoginResult{}, domain.GatewayError{Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var out loginOut
	if err := c.do(req, &out, ""); err != nil {
		return LoginResult{}, err
	}
	return LoginResult{AccessToken: out.AccessToken, TokenType: out.TokenType}, nil
}

// List fetches bookings matching the filters. Zero-valued filters are omitted
// from the query string.
func (c *Client) List(ctx context.Context, f models.BookingFilters) ([]models.Booking, error) {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.PaymentMethod != "" {
		q.Set("payment_method", string(f.PaymentMethod))
	}
	if f.FlightType != "" {
		q.Set("flight_type", string(f.FlightType))
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Skip > 0 {
		q.Set("skip", strconv.Itoa(f.Skip))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}

	endpoint := c.BaseURL + "/api/bookings"
	if encoded := q.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, domain.GatewayError{Err: err}
	}

	var wire []bookingOut
	if err := c.do(req, &wire, "booking"); err != nil {
		return nil, err
	}

	bookings := make([]models.Booking, 0, len(wire))
	for _, w := range wire {
		b, err := w.toDomain()
		if err != nil {
			return nil, domain.GatewayError{Msg: "malformed booking payload", Err: err}
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

func (c *Client) Get(ctx context.Context, id string) (models.Booking, error) {
	return c.bookingRequest(ctx, http.MethodGet, "/api/bookings/"+url.PathEscape(id), nil)
}

func (c *Client) CheckIn(ctx context.Context, id string) (models.Booking, error) {
	return c.bookingRequest(ctx, http.MethodPatch, "/api/bookings/"+url.PathEscape(id)+"/check-in", nil)
}

func (c *Client) Collect(ctx context.Context, id string) (models.Booking, error) {
	return c.bookingRequest(ctx, http.MethodPatch, "/api/bookings/"+url.PathEscape(id)+"/collect", nil)
}

func (c *Client) SetStatus(ctx context.Context, id string, status models.Status) (models.Booking, error) {
	// The backend takes the target status lowercased as a query param.
	path := fmt.Sprintf("/api/bookings/%s/status?status=%s", url.PathEscape(id), url.QueryEscape(strings.ToLower(string(status))))
	return c.bookingRequest(ctx, http.MethodPatch, path, nil)
}

func (c *Client) Update(ctx context.Context, id string, u models.BookingUpdate) (models.Booking, error) {
	return c.bookingRequest(ctx, http.MethodPost, "/api/bookings/"+url.PathEscape(id)+"/update", toWireUpdate(u))
}

func (c *Client) AddNote(ctx context.Context, id, note string) (models.Booking, error) {
	return c.bookingRequest(ctx, http.MethodPost, "/api/bookings/"+url.PathEscape(id)+"/notes", noteIn{Note: note})
}

func (c *Client) bookingRequest(ctx context.Context, method, path string, body any) (models.Booking, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return models.Booking{}, domain.GatewayError{Err: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return models.Booking{}, domain.GatewayError{Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	var wire bookingOut
	if err := c.do(req, &wire, "booking"); err != nil {
		return models.Booking{}, err
	}

	b, err := wire.toDomain()
	if err != nil {
		return models.Booking{}, domain.GatewayError{Msg: "malformed booking payload", Err: err}
	}
	return b, nil
}

// do sends the request with the context's bearer token attached and decodes a
// 2xx response into out. Non-2xx responses are mapped onto the domain error
// taxonomy, preserving the backend's human-readable detail when present.
// resource names what a 404 refers to; empty means a generic "not found".
func (c *Client) do(req *http.Request, out any, resource string) error {
	if token := TokenFromContext(req.Context()); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return domain.GatewayError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.GatewayError{StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := extractDetail(raw)
		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return domain.UnauthorizedError{Msg: msg}
		case http.StatusNotFound:
			return domain.NotFoundError{Resource: resource}
		default:
			return domain.GatewayError{StatusCode: resp.StatusCode, Msg: msg}
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return domain.GatewayError{StatusCode: resp.StatusCode, Msg: "malformed response payload", Err: err}
	}
	return nil
}

// extractDetail pulls the message out of a backend error body, which is
// usually {"detail": "..."} but can carry structured validation details.
func extractDetail(raw []byte) string {
	var e errorOut
	if err := json.Unmarshal(raw, &e); err == nil {
		switch d := e.Detail.(type) {
		case string:
			return d
		case []any, map[string]any:
			if encoded, err := json.Marshal(d); err == nil {
				return string(encoded)
			}
		}
	}
	return strings.TrimSpace(string(raw))
}
