// Package validation holds the buyer schema shared by the form endpoints and
// the CSV import pipeline.
package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/poofware/buyer-leads-service/internal/dtos"
	"github.com/poofware/buyer-leads-service/internal/utils"
)

var phoneRegex = regexp.MustCompile(`^\d{10,15}$`)

// BuyerSchema validates and normalizes buyer payloads. It is safe for
// concurrent use once constructed.
type BuyerSchema struct {
	validate *validator.Validate
}

func NewBuyerSchema() *BuyerSchema {
	v := validator.New()

	// Report JSON field names so messages line up with form inputs.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRegex.MatchString(fl.Field().String())
	})
	// Infinity and NaN fit in DOUBLE PRECISION but cannot be encoded as JSON.
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsInf(f, 0) && !math.IsNaN(f)
	})
	_ = v.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
		return utils.IsEnumCode(utils.EnumField(fl.Param()), fl.Field().String())
	})

	v.RegisterStructValidation(buyerStructLevel, dtos.BuyerPayload{})

	return &BuyerSchema{validate: v}
}

// buyerStructLevel holds the cross-field rules.
func buyerStructLevel(sl validator.StructLevel) {
	p := sl.Current().Interface().(dtos.BuyerPayload)

	if utils.IsResidential(p.PropertyType) && strings.TrimSpace(p.BHK) == "" {
		sl.ReportError(p.BHK, "bhk", "BHK", "required_for_residential", "")
	}

	if isFinite(p.BudgetMin) && isFinite(p.BudgetMax) && *p.BudgetMax < *p.BudgetMin {
		sl.ReportError(p.BudgetMax, "budgetMax", "BudgetMax", "gtefield", "budgetMin")
	}
}

func isFinite(v *float64) bool {
	return v != nil && !math.IsInf(*v, 0) && !math.IsNaN(*v)
}

// Validate returns the normalized payload, or the full list of field
// violations when the payload is not acceptable.
func (s *BuyerSchema) Validate(in dtos.BuyerPayload) (dtos.BuyerPayload, []dtos.ValidationErrorDetail) {
	p := trimPayload(in)

	if err := s.validate.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return dtos.BuyerPayload{}, FormatValidationErrors(verrs)
		}
		return dtos.BuyerPayload{}, []dtos.ValidationErrorDetail{{
			Field: "", Message: err.Error(), Code: "validation_error",
		}}
	}

	if p.Status == "" {
		p.Status = utils.StatusNew
	}
	if !utils.IsResidential(p.PropertyType) {
		p.BHK = ""
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return p, nil
}

func trimPayload(in dtos.BuyerPayload) dtos.BuyerPayload {
	p := in
	p.FullName = strings.TrimSpace(p.FullName)
	p.Email = strings.TrimSpace(p.Email)
	p.Phone = strings.TrimSpace(p.Phone)
	p.City = strings.TrimSpace(p.City)
	p.PropertyType = strings.TrimSpace(p.PropertyType)
	p.BHK = strings.TrimSpace(p.BHK)
	p.Purpose = strings.TrimSpace(p.Purpose)
	p.Timeline = strings.TrimSpace(p.Timeline)
	p.Source = strings.TrimSpace(p.Source)
	p.Status = strings.TrimSpace(p.Status)
	if p.Tags != nil {
		tags := make([]string, 0, len(p.Tags))
		for _, t := range p.Tags {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
		p.Tags = tags
	}
	return p
}

// FormatValidationErrors converts validator errors into per-field details.
func FormatValidationErrors(errs validator.ValidationErrors) []dtos.ValidationErrorDetail {
	details := make([]dtos.ValidationErrorDetail, 0, len(errs))
	for _, err := range errs {
		details = append(details, dtos.ValidationErrorDetail{
			Field:   err.Field(),
			Message: messageFor(err),
			Code:    "validation_" + err.Tag(),
		})
	}
	return details
}

func messageFor(err validator.FieldError) string {
	field := err.Field()
	switch err.Tag() {
	case "min":
		if field == "fullName" {
			return "Full name must be at least 2 characters"
		}
		return fmt.Sprintf("%s must be at least %s characters", field, err.Param())
	case "email":
		return "Invalid email"
	case "phone":
		return "Phone must be 10-15 digits"
	case "required":
		return requiredLabel(field) + " is required"
	case "enum":
		return fmt.Sprintf("%s must be one of %s", field, utils.EnumCodeList(utils.EnumField(err.Param())))
	case "finite":
		return fmt.Sprintf("%s must be a number", field)
	case "gte":
		return fmt.Sprintf("%s must be a non-negative number", field)
	case "required_for_residential":
		return "BHK is required for Apartment/Villa"
	case "gtefield":
		return "budgetMax must be greater than or equal to budgetMin"
	default:
		return fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", field, err.Tag())
	}
}

func requiredLabel(field string) string {
	if field == "" {
		return field
	}
	return strings.ToUpper(field[:1]) + field[1:]
}
