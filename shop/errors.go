package shop

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrUsernameTaken      = errors.New("username_registered")
	ErrEmailTaken         = errors.New("email_registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRating      = errors.New("rating must be between 0 and 5")
	ErrOutOfStock         = errors.New("product is out of stock")
	ErrDuplicateProduct   = errors.New("product with that name already exists")
	ErrInvalidProduct     = errors.New("product name is required")
	ErrParamCount         = errors.New("parameter count does not match placeholders")
)

// Registration error codes.
const (
	CodePasswordInvalid  = "password_invalid"
	CodeUsernameInvalid  = "username_invalid"
	CodeEmailInvalid     = "email_invalid"
	CodeInvalidBirthDate = "invalid_birth_date"
)

// RegistrationError reports the first registration field that failed
// validation.
type RegistrationError struct {
	Code  string
	Field string
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("registration rejected: %s", e.Code)
}
