package handler

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/studyspace/study-space-api/internal/apierr"
)

// Validator adapts go-playground/validator to Echo's Validator interface.
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{v: validator.New(validator.WithRequiredStructEnabled())}
}

func (val *Validator) Validate(i interface{}) error {
	return val.v.Struct(i)
}

// bindAndValidate binds the JSON body into dst and runs struct validation.
// Violations come back as a 400 with per-field details.
func bindAndValidate(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return apierr.BadRequest("invalid body")
	}
	if err := c.Validate(dst); err != nil {
		var verrs validator.ValidationErrors
		details := map[string]any{}
		if ok := asValidationErrors(err, &verrs); ok {
			for _, fe := range verrs {
				details[strings.ToLower(fe.Field())] = "failed " + fe.Tag() + " validation"
			}
		}
		e := apierr.BadRequest("validation failed")
		if len(details) > 0 {
			e.Details = details
		}
		return e
	}
	return nil
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	verrs, ok := err.(validator.ValidationErrors)
	if ok {
		*target = verrs
	}
	return ok
}
