// Package validation converts validator/v10 failures into coded domain errors.
package validation

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	domainerrors "github.com/listenupapp/librarian-server/internal/errors"
)

// Validator wraps go-playground/validator with domain error conversion.
type Validator struct {
	v *validator.Validate
}

// New creates a validator configured for our domain.
func New() *Validator {
	v := validator.New()

	// Use JSON tag names in error messages.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if name == "" {
			return fld.Name
		}
		name, _, _ = strings.Cut(name, ",")
		if name == "-" {
			return fld.Name
		}
		return name
	})

	//nolint:errcheck // Registration only fails for empty tags.
	_ = v.RegisterValidationCtx("future", isFuture)
	//nolint:errcheck // Registration only fails for empty tags.
	_ = v.RegisterValidation("notblank", isNotBlank)

	return &Validator{v: v}
}

// Validate validates a struct and returns a domain error.
func (v *Validator) Validate(s any) error {
	if err := v.v.Struct(s); err != nil {
		return v.formatError(err)
	}
	return nil
}

// ValidateCtx is Validate with ctx handed to context-aware rules.
func (v *Validator) ValidateCtx(ctx context.Context, s any) error {
	if err := v.v.StructCtx(ctx, s); err != nil {
		return v.formatError(err)
	}
	return nil
}

type asOfKey struct{}

// AsOf returns a context whose "future" checks compare against now rather
// than the wall clock.
func AsOf(ctx context.Context, now time.Time) context.Context {
	return context.WithValue(ctx, asOfKey{}, now)
}

// isFuture accepts a time.Time strictly after the reference time. Pair it
// with omitempty for optional fields.
func isFuture(ctx context.Context, fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	now, ok := ctx.Value(asOfKey{}).(time.Time)
	if !ok {
		now = time.Now()
	}
	return t.After(now)
}

func isNotBlank(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return true
	}
	return strings.TrimSpace(fl.Field().String()) != ""
}

// formatError converts validator errors to domain errors.
func (v *Validator) formatError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	fieldErrors := make(map[string]string, len(validationErrs))
	for _, e := range validationErrs {
		fieldErrors[e.Field()] = v.friendlyMessage(e)
	}

	return domainerrors.ValidationWithDetails("validation failed", fieldErrors)
}

//nolint:gocyclo // Switch statement covering validation tags is intentionally exhaustive.
func (v *Validator) friendlyMessage(e validator.FieldError) string {
	numeric := e.Kind() >= reflect.Int && e.Kind() <= reflect.Float64

	switch e.Tag() {
	case "required", "notblank":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if numeric {
			return "must be at least " + e.Param()
		}
		return fmt.Sprintf("must be at least %s characters", e.Param())
	case "max":
		if numeric {
			return "must not exceed " + e.Param()
		}
		return fmt.Sprintf("must not exceed %s characters", e.Param())
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	case "gt":
		return "must be greater than " + e.Param()
	case "ltefield":
		return "must be less than or equal to " + e.Param()
	case "future":
		return "must be in the future"
	default:
		return "is invalid"
	}
}
