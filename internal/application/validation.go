package application

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ericfisherdev/recipefinder/internal/domain/model"
)

// MinSecretLength is the shortest secret accepted at registration and login.
const MinSecretLength = 6

// User-facing validation messages, in the order the rules are checked.
const (
	MsgMissingFields = "Please fill in all fields."
	MsgInvalidEmail  = "Please enter a valid email address."
	MsgShortSecret   = "Password must be at least 6 characters long."
)

// looseEmailPattern accepts anything shaped like local@domain.tld.
var looseEmailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

var credentialValidator = newCredentialValidator()

func newCredentialValidator() *validator.Validate {
	v := validator.New()
	mustRegisterValidation(v, "loose_email", func(fl validator.FieldLevel) bool {
		return looseEmailPattern.MatchString(fl.Field().String())
	})
	return v
}

// mustRegisterValidation panics when tag cannot be registered on v.
func mustRegisterValidation(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %q validation: %v", tag, err))
	}
}

// credentialsInput carries the raw form values plus trimmed copies used for
// the presence check.
type credentialsInput struct {
	TrimmedEmail  string `validate:"required"`
	TrimmedSecret string `validate:"required"`
	Email         string `validate:"loose_email"`
	Secret        string `validate:"min=6"`
}

// validateCredentials applies the presence, email shape and secret length
// rules in that order and returns the first violation.
func validateCredentials(email, secret string) error {
	in := credentialsInput{
		TrimmedEmail:  strings.TrimSpace(email),
		TrimmedSecret: strings.TrimSpace(secret),
		Email:         email,
		Secret:        secret,
	}

	err := credentialValidator.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	failed := make(map[string]bool, len(fieldErrs))
	for _, fe := range fieldErrs {
		failed[fe.Field()] = true
	}

	switch {
	case failed["TrimmedEmail"]:
		return &model.ValidationError{Field: "email", Message: MsgMissingFields}
	case failed["TrimmedSecret"]:
		return &model.ValidationError{Field: "password", Message: MsgMissingFields}
	case failed["Email"]:
		return &model.ValidationError{Field: "email", Message: MsgInvalidEmail}
	default:
		return &model.ValidationError{Field: "password", Message: MsgShortSecret}
	}
}
