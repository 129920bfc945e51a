package services

import (
	"errors"
	"net/mail"
	"strings"
)

var ErrInvalidInput = errors.New("invalid input")

// NormalizeEmail lowercases and trims an address, returning "" when it does
// not parse. Every email comparison in the portal runs on this form.
func NormalizeEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return ""
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ""
	}
	return email
}

func NormalizeCredentialsInput(emailRaw string, passwordRaw string) (string, string, error) {
	email := NormalizeEmail(emailRaw)
	password := strings.TrimSpace(passwordRaw)
	if email == "" || password == "" {
		return "", "", ErrInvalidInput
	}
	return email, password, nil
}
