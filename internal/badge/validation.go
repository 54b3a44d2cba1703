package badge

import (
	"errors"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError lists a human readable message per rejected field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return "invalid badge: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

var fieldLabels = map[string]string{
	"Name":        "Badge name",
	"Description": "Description",
	"Image":       "Image URL",
}

// mintForm adds the mint form's length rules on top of Fields.
type mintForm struct {
	Name        string `validate:"required,min=3"`
	Description string `validate:"required,min=10"`
	Image       string `validate:"required,http_url"`
}

func newValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

func (f Fields) normalized() Fields {
	return Fields{
		Name:        strings.TrimSpace(f.Name),
		Description: strings.TrimSpace(f.Description),
		Image:       strings.TrimSpace(f.Image),
	}
}

func (p Patch) normalized() Patch {
	trim := func(s *string) *string {
		if s == nil {
			return nil
		}
		v := strings.TrimSpace(*s)
		return &v
	}
	return Patch{Name: trim(p.Name), Description: trim(p.Description), Image: trim(p.Image)}
}

// checkPatch rejects explicitly supplied empty values, which omitempty would let through.
func checkPatch(v *validator.Validate, p Patch) error {
	fields := map[string]string{}
	if p.Name != nil && *p.Name == "" {
		fields["name"] = "Badge name is required"
	}
	if p.Description != nil && *p.Description == "" {
		fields["description"] = "Description is required"
	}
	if p.Image != nil && *p.Image == "" {
		fields["image"] = "Image URL is required"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return check(v, p)
}

func check(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Fields: map[string]string{"_": err.Error()}}
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[strings.ToLower(fe.Field())] = message(fe)
	}
	return &ValidationError{Fields: fields}
}

func message(fe validator.FieldError) string {
	label := fieldLabels[fe.Field()]
	if label == "" {
		label = fe.Field()
	}
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "min":
		return label + " must be at least " + fe.Param() + " characters"
	case "http_url":
		return "Please enter a valid URL"
	default:
		return label + " is invalid"
	}
}
