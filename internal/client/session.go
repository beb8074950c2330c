package client

import "context"

// Notification kinds accepted by the Notifier collaborator.
const (
	NotifySuccess = "success"
	NotifyError   = "error"
	NotifyWarning = "warning"
	NotifyInfo    = "info"
)

// Notifier receives every user-visible success or failure message.
type Notifier interface {
	Notify(message, kind string)
}

// Session is the auth collaborator consumed by the engine. Session
// existence is a precondition for ticket operations; enforcing it is
// the job of an outer routing guard, not of this package.
type Session interface {
	CurrentUser() *User
	IsAuthenticated() bool
	Login(ctx context.Context, email, password string) (*User, error)
	Signup(ctx context.Context, name, email, password string) (*User, error)
	Logout()
}

// APISession implements Session against the ticket API's auth
// endpoints, holding the account and token in memory.
type APISession struct {
	client *Client
	user   *User
}

// NewAPISession wraps the API client.
func NewAPISession(client *Client) *APISession {
	return &APISession{client: client}
}

// Resume installs a previously issued token without a login roundtrip.
// The account identity is unknown until the next authenticated call.
func (s *APISession) Resume(token string) {
	s.client.SetToken(token)
}

func (s *APISession) CurrentUser() *User {
	return s.user
}

func (s *APISession) IsAuthenticated() bool {
	return s.client.Token() != ""
}

func (s *APISession) Login(ctx context.Context, email, password string) (*User, error) {
	user, err := s.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	s.user = user
	return user, nil
}

func (s *APISession) Signup(ctx context.Context, name, email, password string) (*User, error) {
	user, err := s.client.Signup(ctx, name, email, password)
	if err != nil {
		return nil, err
	}
	s.user = user
	return user, nil
}

func (s *APISession) Logout() {
	s.user = nil
	s.client.SetToken("")
}
