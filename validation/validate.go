package validation

import (
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/kbukum/taskflow/errors"
)

// FieldError names one field that failed validation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (f FieldError) String() string { return f.Field + ": " + f.Message }

var instance = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(configKey)
	return v
})

// configKey reports a field by its mapstructure key, falling back to the
// snake_case Go name.
func configKey(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("mapstructure"), ",")
	switch name {
	case "", "-":
		return toSnakeCase(fld.Name)
	default:
		return name
	}
}

// Validate checks s against its `validate` struct tags. Failures come back
// as a CONFIG_INVALID AppError with every offending field in the "fields"
// detail.
func Validate(s any) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Validation("validation failed").WithCause(err)
	}

	fields := make([]FieldError, len(verrs))
	parts := make([]string, len(verrs))
	for i, fe := range verrs {
		fields[i] = FieldError{Field: fieldPath(fe.Namespace()), Message: describe(fe)}
		parts[i] = fields[i].String()
	}
	return errors.Validation(strings.Join(parts, "; ")).WithDetail("fields", fields)
}

// fieldPath strips the root type from a namespace:
// "AppConfig.engine.threshold" becomes "engine.threshold".
func fieldPath(namespace string) string {
	_, rest, found := strings.Cut(namespace, ".")
	if !found {
		return namespace
	}
	return rest
}

var messages = map[string]string{
	"required":    "is required",
	"required_if": "is required",
	"url":         "must be a valid URL",
	"gt":          "must be greater than ",
	"gte":         "must be at least ",
	"min":         "must be at least ",
	"lte":         "must be at most ",
	"max":         "must be at most ",
	"oneof":       "must be one of: ",
}

func describe(fe validator.FieldError) string {
	msg, ok := messages[fe.Tag()]
	if !ok {
		return "is invalid"
	}
	if strings.HasSuffix(msg, " ") {
		return msg + fe.Param()
	}
	return msg
}

func toSnakeCase(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
