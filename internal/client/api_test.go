package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "github.com/ticketflow/ticketflow/pkg/util/errorutil"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, 2*time.Second), server
}

func TestClientListTickets(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/tickets" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok123" {
			t.Errorf("expected bearer token, got %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"tickets": []map[string]any{
				{"id": "1", "title": "Printer offline", "status": "open", "priority": "high",
					"createdBy": "ada@example.com", "createdAt": "2026-01-02T10:00:00Z"},
			},
		})
	})
	client.SetToken("tok123")

	tickets, err := client.ListTickets(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tickets) != 1 || tickets[0].Title != "Printer offline" || tickets[0].CreatedAt != "2026-01-02T10:00:00Z" {
		t.Fatalf("unexpected tickets: %+v", tickets)
	}
}

func TestClientCreateReturnsMessage(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/tickets" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var fields TicketFields
		if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if fields.Title != "VPN drops" || fields.CreatedBy != "unknown" {
			t.Errorf("unexpected payload: %+v", fields)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"message": "Ticket created successfully!"})
	})

	msg, err := client.CreateTicket(context.Background(), TicketFields{
		Title: "VPN drops", Status: "open", Priority: "medium", CreatedBy: "unknown",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if msg != "Ticket created successfully!" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestClientDecodesErrorEnvelope(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": "NOT_FOUND", "message": "Ticket not found"},
		})
	})

	_, err := client.GetTicket(context.Background(), "missing")
	if !apperrors.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.Message != "Ticket not found" {
		t.Fatalf("server message must survive the round trip, got %v", err)
	}
}

func TestClientNonEnvelopeErrorFallsBack(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	})

	_, err := client.ListTickets(context.Background())
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != apperrors.CodeInternalError {
		t.Fatalf("expected internal-error fallback, got %v", err)
	}
}

func TestClientUnreachableServerIsNetworkError(t *testing.T) {
	client, server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})
	server.Close()

	_, err := client.ListTickets(context.Background())
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != apperrors.CodeNetworkError {
		t.Fatalf("expected network error, got %v", err)
	}
	if domainErr.Message != "Unable to reach the server. Please try again." {
		t.Fatalf("unexpected message %q", domainErr.Message)
	}
}

func TestClientAuthInstallsToken(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"token":     "tok456",
			"expiresAt": "2026-09-01T00:00:00Z",
			"user":      map[string]string{"id": "u1", "name": "Ada", "email": "ada@example.com"},
		})
	})

	user, err := client.Login(context.Background(), "ada@example.com", "Passw0rd")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.Email != "ada@example.com" {
		t.Fatalf("unexpected user %+v", user)
	}
	if client.Token() != "tok456" {
		t.Fatalf("token must be installed, got %q", client.Token())
	}
}
