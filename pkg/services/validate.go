package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"landing-cms/pkg/models"

	"github.com/go-playground/validator/v10"
)

// FieldError describes one rejected field. Path uses dotted notation with
// row indexes, e.g. testimonials.0.initials.
type FieldError struct {
	Path    string `json:"path"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError is returned when a document fails validation.
type ValidationError struct {
	Errors []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	paths := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		paths[i] = fe.Path
	}
	return "invalid fields: " + strings.Join(paths, ", ")
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func sectionValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		validate.RegisterStructValidation(sectionStructLevel, models.SectionDocument{})
	})
	return validate
}

// sectionStructLevel requires content while the content field is visible.
func sectionStructLevel(sl validator.StructLevel) {
	doc := sl.Current().Interface().(models.SectionDocument)
	if !doc.Type.Valid() {
		return
	}
	if FieldVisible("content", doc.Type) && strings.TrimSpace(doc.Content) == "" {
		sl.ReportError(doc.Content, "content", "Content", "required", "")
	}
}

// ValidateSection checks a normalized document against the collection
// constraints.
func ValidateSection(doc models.SectionDocument) error {
	err := sectionValidator().Struct(doc)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		out.Errors = append(out.Errors, FieldError{
			Path:    fieldPath(fe.Namespace()),
			Rule:    fe.Tag(),
			Message: fieldMessage(fe),
		})
	}
	return out
}

// fieldPath turns "SectionDocument.testimonials[0].initials" into
// "testimonials.0.initials".
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		namespace = namespace[i+1:]
	}
	namespace = strings.ReplaceAll(namespace, "[", ".")
	return strings.ReplaceAll(namespace, "]", "")
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("This value must be at most %s characters.", fe.Param())
	case "oneof":
		return fmt.Sprintf("This field has an invalid selection: %v", fe.Value())
	}
	return fmt.Sprintf("This field failed the %s rule.", fe.Tag())
}
