package validation

import (
	"fmt"
	"net/url"
	"unicode/utf8"

	"github.com/article-share-api/internal/models"
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// ValidateCredentials validates register input. Username must be 3-50
// characters, password at least 6. Lengths count characters, not bytes.
// Checked before any store access.
func ValidateCredentials(username, password string) []ValidationError {
	var errors []ValidationError

	if username == "" {
		errors = append(errors, ValidationError{Field: "username", Message: "username is required"})
	} else if n := utf8.RuneCountInString(username); n < models.MinUsernameLen || n > models.MaxUsernameLen {
		errors = append(errors, ValidationError{
			Field:   "username",
			Message: fmt.Sprintf("username must be between %d and %d characters", models.MinUsernameLen, models.MaxUsernameLen),
			Value:   username,
		})
	}

	if password == "" {
		errors = append(errors, ValidationError{Field: "password", Message: "password is required"})
	} else if utf8.RuneCountInString(password) < models.MinPasswordLen {
		errors = append(errors, ValidationError{
			Field:   "password",
			Message: fmt.Sprintf("password must be at least %d characters", models.MinPasswordLen),
		})
	}

	return errors
}

// ValidateArticleURL checks that a submitted link is a syntactically valid
// absolute http(s) URL
func ValidateArticleURL(rawURL string) []ValidationError {
	if rawURL == "" {
		return []ValidationError{{Field: "url", Message: "url is required"}}
	}

	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return []ValidationError{{Field: "url", Message: "must be a valid http(s) URL", Value: rawURL}}
	}

	return nil
}
