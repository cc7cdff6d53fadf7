package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/Tycoon_Go/internal/domain"
)

var (
	structOnce     sync.Once
	structValidate *validator.Validate
)

// Validate returns the shared struct validator. Field names in errors use the
// yaml tag, then the json tag, then the Go name.
func Validate() *validator.Validate {
	structOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(tagName)
		structValidate = v
	})
	return structValidate
}

func tagName(fld reflect.StructField) string {
	for _, key := range []string{"yaml", "json"} {
		name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// Struct validates s against its validate tags
func Struct(s interface{}) error {
	return Validate().Struct(s)
}

// Config validates a configuration struct and wraps violations in
// domain.ErrInvalidConfig
func Config(s interface{}) error {
	err := Struct(s)
	if err == nil {
		return nil
	}

	fields := FormatFieldErrors(err)
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fields[k])
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidConfig, strings.Join(parts, "; "))
}

// FormatFieldErrors turns validator errors into a field -> message map without
// leaking Go struct names
func FormatFieldErrors(err error) map[string]string {
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
		field := fieldPath(e.Namespace())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "gt":
			errs[field] = fmt.Sprintf("Must be greater than %s", e.Param())
		case "gte":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "lt":
			errs[field] = fmt.Sprintf("Must be less than %s", e.Param())
		case "lte":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "oneof":
			errs[field] = fmt.Sprintf("Must be one of [%s]", e.Param())
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

// fieldPath drops the root struct name from a validator namespace
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}
