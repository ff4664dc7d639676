package validator

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode"

	playground "github.com/go-playground/validator/v10"
)

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse(DateLayout, dateStr)
	return date, err == nil
}

var monthRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// IsValidMonth checks a YYYY-MM month tag.
func IsValidMonth(month string) bool {
	return monthRegex.MatchString(month)
}

// ParseMonth returns the first day of a YYYY-MM month tag in UTC.
func ParseMonth(month string) (time.Time, bool) {
	if !IsValidMonth(month) {
		return time.Time{}, false
	}
	t, err := time.Parse(MonthLayout, month)
	return t, err == nil
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

var businessCodeRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._/-]{0,49}$`)

// IsValidCode validates short opaque business codes such as EMP-001 or INV-0001.
func IsValidCode(code string) bool {
	return businessCodeRegex.MatchString(code)
}

var (
	structOnce     sync.Once
	structValidate *playground.Validate
)

func engine() *playground.Validate {
	structOnce.Do(func() {
		v := playground.New(playground.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonFieldName)
		_ = v.RegisterValidation("yyyymm", func(fl playground.FieldLevel) bool {
			return IsValidMonth(fl.Field().String())
		})
		_ = v.RegisterValidation("date", func(fl playground.FieldLevel) bool {
			_, ok := IsValidDate(fl.Field().String())
			return ok
		})
		_ = v.RegisterValidation("code", func(fl playground.FieldLevel) bool {
			return IsValidCode(fl.Field().String())
		})
		structValidate = v
	})
	return structValidate
}

// Struct runs the `validate` struct tags of s and converts failures into
// ValidationErrors keyed by the json field name.
func Struct(s interface{}) error {
	err := engine().Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	errs := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, ValidationError{Field: fieldPath(fe), Message: message(fe)})
	}
	return errs
}

// fieldPath drops the root struct name and embedded struct names:
// "UpsertRequest.entries[0].tax" -> "entries[0].tax",
// "IssueRequest.QuantityAction.quantity" -> "quantity".
func fieldPath(fe playground.FieldError) string {
	parts := strings.Split(fe.Namespace(), ".")
	if len(parts) < 2 {
		return fe.Field()
	}
	kept := parts[1:][:0]
	for _, p := range parts[1:] {
		if p != "" && unicode.IsUpper(rune(p[0])) {
			continue
		}
		kept = append(kept, p)
	}
	if len(kept) == 0 {
		return fe.Field()
	}
	return strings.Join(kept, ".")
}

func message(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "ne":
		return "must not be " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "yyyymm":
		return "must be a month in YYYY-MM format"
	case "date":
		return "must be a date in YYYY-MM-DD format"
	case "code":
		return "must be a short code of letters, digits, '.', '_', '/' or '-'"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "min":
		if k := fe.Kind(); k == reflect.Slice || k == reflect.Map {
			return "must have at least " + fe.Param() + " item(s)"
		}
		return "must be at least " + fe.Param() + " characters"
	}
	return "is invalid"
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// Collect merges the ValidationErrors of several checks into one. Any other
// error is returned unchanged.
func Collect(checks ...error) error {
	var errs ValidationErrors
	for _, err := range checks {
		if err == nil {
			continue
		}
		var verrs ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		errs = append(errs, verrs...)
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
