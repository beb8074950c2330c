package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/ticketflow/ticketflow/pkg/util/errorutil"
)

// TicketAPI is the external ticket collaborator the store talks to.
type TicketAPI interface {
	ListTickets(ctx context.Context) ([]Ticket, error)
	GetTicket(ctx context.Context, id string) (*Ticket, error)
	CreateTicket(ctx context.Context, fields TicketFields) (string, error)
	UpdateTicket(ctx context.Context, id string, fields TicketFields) (string, error)
	DeleteTicket(ctx context.Context, id string) (string, error)
	TicketStats(ctx context.Context) (Stats, error)
}

// Client is the HTTP implementation of the ticket and auth APIs.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// NewClient builds a client for the given API base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// SetToken installs the bearer token sent on subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Token returns the installed bearer token, empty when logged out.
func (c *Client) Token() string {
	return c.token
}

func (c *Client) ListTickets(ctx context.Context) ([]Ticket, error) {
	var out struct {
		Tickets []Ticket `json:"tickets"`
	}
	if err := c.do(ctx, http.MethodGet, "/tickets", nil, &out); err != nil {
		return nil, err
	}
	return out.Tickets, nil
}

func (c *Client) GetTicket(ctx context.Context, id string) (*Ticket, error) {
	var out struct {
		Ticket Ticket `json:"ticket"`
	}
	if err := c.do(ctx, http.MethodGet, "/tickets/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out.Ticket, nil
}

func (c *Client) CreateTicket(ctx context.Context, fields TicketFields) (string, error) {
	return c.message(ctx, http.MethodPost, "/tickets", fields)
}

func (c *Client) UpdateTicket(ctx context.Context, id string, fields TicketFields) (string, error) {
	return c.message(ctx, http.MethodPut, "/tickets/"+id, fields)
}

func (c *Client) DeleteTicket(ctx context.Context, id string) (string, error) {
	return c.message(ctx, http.MethodDelete, "/tickets/"+id, nil)
}

func (c *Client) TicketStats(ctx context.Context) (Stats, error) {
	var out struct {
		Stats Stats `json:"stats"`
	}
	if err := c.do(ctx, http.MethodGet, "/tickets/stats", nil, &out); err != nil {
		return Stats{}, err
	}
	return out.Stats, nil
}

// Login authenticates and installs the returned token.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	return c.authenticate(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

// Signup registers a new account and installs the returned token.
func (c *Client) Signup(ctx context.Context, name, email, password string) (*User, error) {
	return c.authenticate(ctx, "/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (*User, error) {
	var out struct {
		Token string `json:"token"`
		User  User   `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, path, body, &out); err != nil {
		return nil, err
	}
	c.token = out.Token
	return &out.User, nil
}

func (c *Client) message(ctx context.Context, method, path string, body any) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, method, path, body, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return apperrors.NewNetworkError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.NewNetworkError(err)
	}

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeAPIError maps the API's error envelope back into the shared
// taxonomy so callers can branch on code instead of status strings.
func decodeAPIError(status int, raw []byte) error {
	var envelope struct {
		Error struct {
			Code    string         `json:"code"`
			Message string         `json:"message"`
			Details map[string]any `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil || envelope.Error.Code == "" {
		return apperrors.NewDomainError(apperrors.CodeInternalError,
			fmt.Sprintf("request failed with status %d", status), status, nil)
	}
	return apperrors.NewDomainError(envelope.Error.Code, envelope.Error.Message, status, envelope.Error.Details)
}
