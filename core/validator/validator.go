package validator

import (
	"reflect"
	"strings"
	"sync"
)

// ValidatorFunc builds the rule for one tag entry.
type ValidatorFunc func(field string, value reflect.Value, params []string) Rule

var (
	registryMu sync.RWMutex
	registry   = map[string]ValidatorFunc{
		"required": requiredValidator,
		"min":      minValidator,
		"max":      maxValidator,
		"between":  betweenValidator,
		"email":    emailValidator,
		"url":      urlValidator,
		"in":       inValidator,
	}
)

// RegisterValidator adds or replaces a named rule.
func RegisterValidator(name string, fn ValidatorFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = fn
}

// ValidateStruct checks v's fields against their `validate` tags.
//
// Rules are separated by ";" and parameters by ",": `validate:"required;min:3"`.
// The "omitempty" rule skips the remaining rules when the value is zero.
// A `message` tag replaces the message of every failing rule on that field.
// The reported field name is the `form` tag when present.
func ValidateStruct(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return ErrNotStruct
	}

	var errs ValidationErrors
	validateStruct(rv.Elem(), "", &errs)
	if errs.IsEmpty() {
		return nil
	}
	return errs
}

func validateStruct(rv reflect.Value, prefix string, errs *ValidationErrors) {
	rt := rv.Type()
	for i := range rv.NumField() {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag := sf.Tag.Get("validate")
		if tag == "-" {
			continue
		}

		name := sf.Name
		if f, _, _ := strings.Cut(sf.Tag.Get("form"), ","); f != "" && f != "-" {
			name = f
		}
		if prefix != "" {
			name = prefix + "." + name
		}

		field := rv.Field(i)
		if field.Kind() == reflect.Pointer && !field.IsNil() {
			field = field.Elem()
		}
		if field.Kind() == reflect.Struct && tag == "" {
			validateStruct(field, name, errs)
			continue
		}
		if tag != "" {
			validateField(name, field, tag, sf.Tag.Get("message"), errs)
		}
	}
}

func validateField(name string, field reflect.Value, tag, message string, errs *ValidationErrors) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for raw := range strings.SplitSeq(tag, ";") {
		ruleName, paramStr, _ := strings.Cut(strings.TrimSpace(raw), ":")
		ruleName = strings.TrimSpace(ruleName)
		if ruleName == "" {
			continue
		}
		if ruleName == "omitempty" {
			if field.IsZero() {
				return
			}
			continue
		}

		var params []string
		if paramStr = strings.TrimSpace(paramStr); paramStr != "" {
			for p := range strings.SplitSeq(paramStr, ",") {
				params = append(params, strings.TrimSpace(p))
			}
		}

		fn, ok := registry[ruleName]
		if !ok {
			continue
		}
		r := fn(name, field, params)
		if r.Check() {
			continue
		}
		if message != "" {
			r.Error.Message = message
		}
		errs.Add(r.Error)
	}
}
