package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pairloom/garden-engine/internal/domain"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// Global validator instance
var validate *Validator

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	// Register custom validations for catalog item types and removal scopes
	_ = v.RegisterValidation("itemtype", validateItemType)
	_ = v.RegisterValidation("scope", validateScope)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError formats validation errors into a user-friendly map
// This prevents leaking internal struct names and provides cleaner error messages
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "itemtype":
			errs[field] = "Unknown item type"
		case "scope":
			errs[field] = "Invalid scope. Valid options: plants, decor, landmarks, all"
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s characters", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s characters", e.Param())
		case "nefield":
			errs[field] = fmt.Sprintf("Must differ from %s", strings.ToLower(e.Param()))
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

// ValidScopes defines supported bulk-removal scopes
var ValidScopes = map[string]bool{
	"plants":    true,
	"decor":     true,
	"landmarks": true,
	"all":       true,
}

// Custom validation function for catalog item types
func validateItemType(fl validator.FieldLevel) bool {
	itemType := fl.Field().String()
	// Allow empty if not required (handled by 'required' tag if needed)
	if itemType == "" {
		return true
	}
	_, ok := domain.SpecFor(domain.ItemType(itemType))
	return ok
}

// Custom validation function for removal scopes
func validateScope(fl validator.FieldLevel) bool {
	scope := fl.Field().String()
	if scope == "" {
		return true
	}
	return ValidScopes[strings.ToLower(scope)]
}
