// Package forms holds the per-form field records and their validation
// rules. Each form is a distinct record with its own Validate method
// returning a field-to-message map; an absent key means the field is
// valid. Validation is pure: no I/O, no mutation of the form.
package forms

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/ticketflow/ticketflow/internal/domain"
)

// Field length limits for the ticket form.
const (
	TitleMaxLen       = 200
	DescriptionMaxLen = 1000
)

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// LoginForm captures credentials for an existing account.
type LoginForm struct {
	Email    string
	Password string
}

// Validate checks login fields.
func (f LoginForm) Validate() map[string]string {
	errs := map[string]string{}
	validateEmail(errs, f.Email)
	if f.Password == "" {
		errs["password"] = "Password is required"
	} else if len(f.Password) < 6 {
		errs["password"] = "Password must be at least 6 characters"
	}
	return errs
}

// SignupForm captures new-account fields.
type SignupForm struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// Validate checks signup fields. Each invalid field populates exactly
// its own key.
func (f SignupForm) Validate() map[string]string {
	errs := map[string]string{}
	if f.Name == "" {
		errs["name"] = "Name is required"
	} else if len([]rune(f.Name)) < 2 {
		errs["name"] = "Name must be at least 2 characters"
	}
	validateEmail(errs, f.Email)
	if f.Password == "" {
		errs["password"] = "Password is required"
	} else if len(f.Password) < 6 {
		errs["password"] = "Password must be at least 6 characters"
	} else if !passwordComplexityOK(f.Password) {
		errs["password"] = "Password must contain uppercase, lowercase, or numbers"
	}
	if f.ConfirmPassword == "" {
		errs["confirmPassword"] = "Please confirm your password"
	} else if f.Password != f.ConfirmPassword {
		errs["confirmPassword"] = "Passwords do not match"
	}
	return errs
}

// passwordComplexityOK mirrors the product's historical rule: the
// password passes when it holds both a lowercase and an uppercase
// letter, or any digit. Intentionally not an AND across all classes.
func passwordComplexityOK(password string) bool {
	var lower, upper, digit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return (lower && upper) || digit
}

// TicketForm captures the four editable ticket fields.
type TicketForm struct {
	Title       string
	Description string
	Status      string
	Priority    string
}

// Validate checks ticket fields. Priority carries no hard rule; the
// server defaults it to medium when absent.
func (f TicketForm) Validate() map[string]string {
	errs := map[string]string{}
	title := strings.TrimSpace(f.Title)
	if title == "" {
		errs["title"] = "Title is required"
	} else if len([]rune(title)) > TitleMaxLen {
		errs["title"] = "Title must be less than 200 characters"
	}
	if f.Status == "" {
		errs["status"] = "Status is required"
	} else if !domain.ValidStatus(domain.TicketStatus(f.Status)) {
		errs["status"] = "Status must be one of: open, in_progress, closed"
	}
	if f.Description != "" && len([]rune(f.Description)) > DescriptionMaxLen {
		errs["description"] = "Description must be less than 1000 characters"
	}
	return errs
}

func validateEmail(errs map[string]string, email string) {
	if email == "" {
		errs["email"] = "Email is required"
	} else if !emailPattern.MatchString(email) {
		errs["email"] = "Please enter a valid email address"
	}
}
