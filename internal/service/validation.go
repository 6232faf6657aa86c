package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"postauth/internal/models"
)

const (
	allowedUsernameSymbols = "-._@+"
	// bcrypt ignores input past 72 bytes and x/crypto refuses it outright.
	maxPasswordBytes = 72
)

// Validator checks registration and post input before it reaches a store.
type Validator struct {
	validate          *validator.Validate
	passwordMinLength int
}

func NewValidator(passwordMinLength int) *Validator {
	v := validator.New()
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return isValidUsername(fl.Field().String())
	})

	return &Validator{validate: v, passwordMinLength: passwordMinLength}
}

func (v *Validator) ValidateRegistration(req models.RegisterRequest) error {
	verr := &ValidationError{}

	var fieldErrs validator.ValidationErrors
	if err := v.validate.Struct(req); err != nil && errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			switch fe.Field() {
			case "Username":
				verr.add("InvalidUserName",
					fmt.Sprintf("Username '%s' is invalid, can only contain letters or digits.", req.Username))
			case "Email":
				verr.add("InvalidEmail", fmt.Sprintf("Email '%s' is invalid.", req.Email))
			}
		}
	}

	v.checkPassword(req.Password, verr)

	return verr.orNil()
}

func (v *Validator) checkPassword(password string, verr *ValidationError) {
	if len(password) < v.passwordMinLength {
		verr.add("PasswordTooShort",
			fmt.Sprintf("Passwords must be at least %d characters.", v.passwordMinLength))
	}
	if len(password) > maxPasswordBytes {
		verr.add("PasswordTooLong",
			fmt.Sprintf("Passwords must be at most %d bytes.", maxPasswordBytes))
	}

	var hasDigit, hasLower, hasUpper, hasSymbol bool
	for i := 0; i < len(password); i++ {
		c := password[i]
		switch {
		case isDigit(c):
			hasDigit = true
		case isLower(c):
			hasLower = true
		case isUpper(c):
			hasUpper = true
		default:
			hasSymbol = true
		}
	}

	if !hasSymbol {
		verr.add("PasswordRequiresNonAlphanumeric", "Passwords must have at least one non alphanumeric character.")
	}
	if !hasDigit {
		verr.add("PasswordRequiresDigit", "Passwords must have at least one digit ('0'-'9').")
	}
	if !hasLower {
		verr.add("PasswordRequiresLower", "Passwords must have at least one lowercase ('a'-'z').")
	}
	if !hasUpper {
		verr.add("PasswordRequiresUpper", "Passwords must have at least one uppercase ('A'-'Z').")
	}
}

func (v *Validator) ValidatePost(req models.PostRequest) error {
	verr := &ValidationError{}

	var fieldErrs validator.ValidationErrors
	if err := v.validate.Struct(req); err != nil && errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			switch {
			case fe.Tag() == "required":
				verr.add(fe.Field()+"Required", fmt.Sprintf("The %s field is required.", fe.Field()))
			case fe.Tag() == "max":
				verr.add(fe.Field()+"TooLong",
					fmt.Sprintf("The field %s must be a string with a maximum length of %s.", fe.Field(), fe.Param()))
			}
		}
	}

	return verr.orNil()
}

func isValidUsername(username string) bool {
	for i := 0; i < len(username); i++ {
		c := username[i]
		if !isDigit(c) && !isLower(c) && !isUpper(c) && !strings.ContainsRune(allowedUsernameSymbols, rune(c)) {
			return false
		}
	}
	return true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isLower(c byte) bool { return c >= 'a' && c <= 'z' }
func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
