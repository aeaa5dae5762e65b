// Package validation holds the per-field input rules. Validators are pure
// functions from raw input to a message, run before any persistence call;
// an empty return means the field is valid.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"storerate/internal/errors"
	"storerate/internal/model"
)

const (
	nameMinLen     = 20
	nameMaxLen     = 60
	passwordMinLen = 8
	passwordMaxLen = 16
	addressMaxLen  = 400
)

var (
	emailPattern     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	uppercasePattern = regexp.MustCompile(`[A-Z]`)
	// The accepted special-character set, matching the registration form.
	specialPattern = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

// Name requires a trimmed length between 20 and 60 characters.
func Name(name string) string {
	// Character counts, not bytes, so multibyte names measure correctly.
	length := utf8.RuneCountInString(strings.TrimSpace(name))
	if length < nameMinLen || length > nameMaxLen {
		return "Name must be between 20 and 60 characters"
	}
	return ""
}

// Email requires a local@domain.tld shape.
func Email(email string) string {
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return "Must be a valid email address"
	}
	return ""
}

// Password requires 8-16 characters with at least one uppercase letter
// and one special character.
func Password(password string) string {
	if length := utf8.RuneCountInString(password); length < passwordMinLen || length > passwordMaxLen {
		return "Password must be between 8 and 16 characters"
	}
	if !uppercasePattern.MatchString(password) {
		return "Password must contain at least one uppercase letter"
	}
	if !specialPattern.MatchString(password) {
		return "Password must contain at least one special character"
	}
	return ""
}

// Address is optional but capped at 400 characters.
func Address(address string) string {
	if utf8.RuneCountInString(strings.TrimSpace(address)) > addressMaxLen {
		return "Address must not exceed 400 characters"
	}
	return ""
}

// RatingValue requires an integer between 1 and 5.
func RatingValue(rating int) string {
	if rating < 1 || rating > 5 {
		return "Rating must be between 1 and 5"
	}
	return ""
}

// AdminRole restricts admin-created users to admin or user; store owners
// are only created through the store-creation flow.
func AdminRole(role string) string {
	if role != model.RoleAdmin && role != model.RoleUser {
		return "Role must be admin or user"
	}
	return ""
}

// check appends a field error when the rule produces a message.
func check(fields []errors.FieldError, field, message string) []errors.FieldError {
	if message == "" {
		return fields
	}
	return append(fields, errors.FieldError{Field: field, Message: message})
}

// RegisterInput validates the self-registration payload.
func RegisterInput(name, email, password, address string) error {
	var fields []errors.FieldError
	fields = check(fields, "name", Name(name))
	fields = check(fields, "email", Email(email))
	fields = check(fields, "password", Password(password))
	fields = check(fields, "address", Address(address))
	return errors.NewValidationError(fields)
}

// AdminCreateUserInput validates the admin user-creation payload.
func AdminCreateUserInput(name, email, password, address, role string) error {
	var fields []errors.FieldError
	fields = check(fields, "name", Name(name))
	fields = check(fields, "email", Email(email))
	fields = check(fields, "password", Password(password))
	fields = check(fields, "address", Address(address))
	fields = check(fields, "role", AdminRole(role))
	return errors.NewValidationError(fields)
}

// CreateStoreInput validates the combined store + owner creation payload.
func CreateStoreInput(name, email, address, ownerName, ownerPassword string) error {
	var fields []errors.FieldError
	fields = check(fields, "name", Name(name))
	fields = check(fields, "email", Email(email))
	fields = check(fields, "address", Address(address))
	fields = check(fields, "ownerName", Name(ownerName))
	fields = check(fields, "ownerPassword", Password(ownerPassword))
	return errors.NewValidationError(fields)
}

// NewPassword validates the replacement password on a password change.
func NewPassword(password string) error {
	var fields []errors.FieldError
	fields = check(fields, "newPassword", Password(password))
	return errors.NewValidationError(fields)
}

// Rating validates a rating submission.
func Rating(storeID uint, rating int) error {
	var fields []errors.FieldError
	if storeID == 0 {
		fields = append(fields, errors.FieldError{Field: "storeId", Message: "Valid store ID is required"})
	}
	fields = check(fields, "rating", RatingValue(rating))
	return errors.NewValidationError(fields)
}
