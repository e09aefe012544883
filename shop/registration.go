package shop

import (
	"errors"
	"regexp"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// Registration is the input of Users.Register.
type Registration struct {
	Username  string `validate:"required"`
	Email     string `validate:"required,shop_email"`
	Password  string `validate:"required"`
	BirthDate string `validate:"required,birth_date"`
}

var (
	emailPattern     = regexp.MustCompile(`^[a-zA-Z0-9_\-.]+@[a-zA-Z0-9_\-.]+\.[a-zA-Z]{2,5}$`)
	birthDatePattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	daysInMonth      = [12]int{31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
)

// fieldCodes lists the registration fields in the order they are reported.
var fieldCodes = []struct {
	field string
	code  string
}{
	{"Password", CodePasswordInvalid},
	{"Username", CodeUsernameInvalid},
	{"Email", CodeEmailInvalid},
	{"BirthDate", CodeInvalidBirthDate},
}

// newValidator returns a validator with the shop's custom tags. Birth dates
// are checked against now.
func newValidator(now func() time.Time) *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("shop_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("birth_date", func(fl validator.FieldLevel) bool {
		return ValidBirthDate(fl.Field().String(), now())
	})
	return v
}

// ValidBirthDate reports whether s is a YYYY-MM-DD date no more than 150
// years before now and not in a later year. February always allows 29 days.
func ValidBirthDate(s string, now time.Time) bool {
	m := birthDatePattern.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])

	if year < now.Year()-150 || year > now.Year() {
		return false
	}
	if month < 1 || month > 12 {
		return false
	}
	return day >= 1 && day <= daysInMonth[month-1]
}

// validateRegistration returns a *RegistrationError for the first failing
// field, in password, username, email, birth date order.
func validateRegistration(v *validator.Validate, r Registration) error {
	err := v.Struct(r)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	failed := map[string]bool{}
	for _, fe := range verrs {
		failed[fe.Field()] = true
	}
	for _, fc := range fieldCodes {
		if failed[fc.field] {
			return &RegistrationError{Code: fc.code, Field: fc.field}
		}
	}
	return &RegistrationError{Code: CodeUsernameInvalid, Field: verrs[0].Field()}
}
