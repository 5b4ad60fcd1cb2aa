package listings

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"propertylisting/src/domain"
	"propertylisting/src/domain/entities"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"
)

type violationKey struct {
	field string
	tag   string
}

var violationMessages = map[violationKey]string{
	{"title", "notblank"}:       "Title is required",
	{"title", "max"}:            "Title must be less than 200 characters",
	{"description", "notblank"}: "Description is required",
	{"price", "required"}:       "Price is required",
	{"price", "gt"}:             "Price must be positive",
	{"address", "notblank"}:     "Address is required",
	{"city", "notblank"}:        "City is required",
	{"country", "notblank"}:     "Country is required",
	{"bedrooms", "gt"}:          "Bedrooms must be positive",
	{"bathrooms", "gt"}:         "Bathrooms must be positive",
	{"area", "gte"}:             "Area must be positive or zero",
	{"type", "required"}:        "Property type is required",
}

// RequestValidator traduz as tags `validate` dos DTOs em violações por campo.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	validate := validator.New(validator.WithRequiredStructEnabled())

	// violações usam o nome do campo no JSON
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if value, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := value.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	_ = validate.RegisterValidation("notblank", validators.NotBlank)
	_ = validate.RegisterValidation("listingtype", func(fl validator.FieldLevel) bool {
		return entities.ListingType(fl.Field().String()).IsValid()
	})

	return &RequestValidator{validate: validate}
}

// Validate devolve *domain.ValidationError com todas as violações, ou nil.
func (v *RequestValidator) Validate(request interface{}) error {
	err := v.validate.Struct(request)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return fmt.Errorf("RequestValidator.Validate - unexpected validation failure: %w", err)
	}

	violations := make([]domain.FieldViolation, 0, len(fieldErrors))
	for _, fieldError := range fieldErrors {
		violations = append(violations, domain.FieldViolation{
			Field:   fieldError.Field(),
			Message: messageFor(fieldError),
		})
	}

	return &domain.ValidationError{Violations: violations}
}

func messageFor(fieldError validator.FieldError) string {
	if message, ok := violationMessages[violationKey{fieldError.Field(), fieldError.Tag()}]; ok {
		return message
	}

	if fieldError.Tag() == "listingtype" {
		names := make([]string, 0, len(entities.ListingTypes))
		for _, t := range entities.ListingTypes {
			names = append(names, string(t))
		}
		return "Property type must be one of " + strings.Join(names, ", ")
	}

	return fmt.Sprintf("%s is invalid", fieldError.Field())
}
