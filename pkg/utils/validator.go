package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Validator struct {
	validate *validator.Validate
}

// FieldError is the first failing field of a validated struct.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	v.RegisterValidation("supported_image", validateImageType)
	v.RegisterValidation("contact_type", validateContactType)

	return &Validator{
		validate: v,
	}
}

// Struct validates s and converts the first failure into a *FieldError.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &FieldError{Field: fe.Field(), Message: describe(fe)}
	}
	return err
}

// Var validates a single value against tag.
func (v *Validator) Var(field interface{}, tag string) error {
	return v.validate.Var(field, tag)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid URL"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "contact_type":
		return "must be one of email, whatsapp, link"
	case "supported_image":
		return "must be a jpeg, png, gif or webp image"
	default:
		return "is invalid"
	}
}

var urlValidator = validator.New()

// IsURL reports whether s is an absolute URL under the same rule as the
// url tag.
func IsURL(s string) bool {
	return urlValidator.Var(s, "url") == nil
}

var supportedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// IsSupportedImage reports whether mimeType can be stored as a banner or avatar.
func IsSupportedImage(mimeType string) bool {
	return supportedImageTypes[strings.ToLower(strings.TrimSpace(mimeType))]
}

func validateImageType(fl validator.FieldLevel) bool {
	return IsSupportedImage(fl.Field().String())
}

func validateContactType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "email", "whatsapp", "link":
		return true
	}
	return false
}
