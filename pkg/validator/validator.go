package validator

import (
	"errors"
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const (
	// MinPasswordLength is the shortest accepted password.
	MinPasswordLength = 6
	// MaxPasswordBytes is the longest password bcrypt can hash.
	MaxPasswordBytes = 72
)

var (
	// EmailRegex accepts local@domain.tld shaped strings without whitespace.
	// It is deliberately looser than RFC 5322.
	EmailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Validator is a validator that validates the given struct.
type Validator interface {
	// Validate validates the given struct
	Validate(s any) error
}

// InventoryItem is the part of an inventory payload subject to validation.
// Length limits follow the inventory table columns.
type InventoryItem struct {
	Name     string `validate:"required,max=255"`
	Sku      string `validate:"required,max=100"`
	Category string `validate:"max=100"`
	Supplier string `validate:"max=255"`
	Location string `validate:"max=255"`
}

// Registration is the part of a registration payload subject to validation.
type Registration struct {
	Username string `validate:"required,max=50"`
	Email    string `validate:"required,looseemail,max=100"`
	Password string `validate:"password,maxbytes72"`
}

// Result holds every violated rule of a payload.
type Result struct {
	IsValid bool
	Errors  []string
}

var messages = map[string]string{
	"InventoryItem.Name.required":      "Item name is required",
	"InventoryItem.Name.max":           "Item name must be at most 255 characters",
	"InventoryItem.Sku.required":       "SKU is required",
	"InventoryItem.Sku.max":            "SKU must be at most 100 characters",
	"InventoryItem.Category.max":       "Category must be at most 100 characters",
	"InventoryItem.Supplier.max":       "Supplier must be at most 255 characters",
	"InventoryItem.Location.max":       "Location must be at most 255 characters",
	"Registration.Username.required":   "Username is required",
	"Registration.Username.max":        "Username must be at most 50 characters",
	"Registration.Email.required":      "Valid email is required",
	"Registration.Email.looseemail":    "Valid email is required",
	"Registration.Email.max":           "Email must be at most 100 characters",
	"Registration.Password.password":   "Password must be at least 6 characters long",
	"Registration.Password.maxbytes72": "Password must be at most 72 bytes",
}

type DefaultValidator struct {
	v *validator.Validate
}

// NewDefaultValidator creates a new default validator.
// It returns a new DefaultValidator and an error if the validator registration fails.
func NewDefaultValidator() (*DefaultValidator, error) {
	v := validator.New()

	if err := v.RegisterValidation("looseemail", func(fl validator.FieldLevel) bool {
		return ValidateEmail(fl.Field().String())
	}); err != nil {
		return nil, fmt.Errorf("register looseemail validator: %w", err)
	}

	if err := v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return ValidatePassword(fl.Field().String())
	}); err != nil {
		return nil, fmt.Errorf("register password validator: %w", err)
	}

	if err := v.RegisterValidation("maxbytes72", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= MaxPasswordBytes
	}); err != nil {
		return nil, fmt.Errorf("register maxbytes72 validator: %w", err)
	}

	return &DefaultValidator{v: v}, nil
}

func (v DefaultValidator) Validate(s any) error {
	return v.v.Struct(s)
}

// ValidateInventoryItem reports all missing required item fields at once.
func (v DefaultValidator) ValidateInventoryItem(item InventoryItem) Result {
	return v.collect(item)
}

// ValidateRegistration reports all violated registration rules at once.
func (v DefaultValidator) ValidateRegistration(reg Registration) Result {
	return v.collect(reg)
}

func (v DefaultValidator) collect(s any) Result {
	err := v.Validate(s)
	if err == nil {
		return Result{IsValid: true}
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return Result{Errors: []string{err.Error()}}
	}

	errs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, fieldMessage(fe))
	}
	return Result{Errors: errs}
}

func fieldMessage(fe validator.FieldError) string {
	if msg, ok := messages[fe.StructNamespace()+"."+fe.Tag()]; ok {
		return msg
	}
	return fmt.Sprintf("%s %s", fe.Field(), ValidationErrorMessage(fe))
}

// ValidateEmail reports whether s looks like local@domain.tld.
func ValidateEmail(s string) bool {
	return EmailRegex.MatchString(s)
}

// ValidatePassword reports whether s is non-empty and at least
// MinPasswordLength characters long.
func ValidatePassword(s string) bool {
	return s != "" && utf8.RuneCountInString(s) >= MinPasswordLength
}

// IsValidationError checks if the given error is a validation error
func IsValidationError(err error) bool {
	var fieldErrs validator.ValidationErrors
	return errors.As(err, &fieldErrs)
}

func ValidationErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email", "looseemail":
		return "must be a valid email address"
	case "password":
		return fmt.Sprintf("must be at least %d characters long", MinPasswordLength)
	case "maxbytes72":
		return fmt.Sprintf("must be at most %d bytes", MaxPasswordBytes)
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return "is invalid"
	}
}
