package validator

import (
	"fmt"
	"net/mail"
	"net/url"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Rule pairs a check with the error reported when it fails.
type Rule struct {
	Check func() bool
	Error ValidationError
}

func pass() Rule { return Rule{Check: func() bool { return true }} }

func rule(field, key, msg string, values map[string]any, check func() bool) Rule {
	if values == nil {
		values = map[string]any{}
	}
	values["field"] = field
	return Rule{
		Check: check,
		Error: ValidationError{
			Field:             field,
			Message:           msg,
			TranslationKey:    "validation." + key,
			TranslationValues: values,
		},
	}
}

func requiredValidator(field string, value reflect.Value, _ []string) Rule {
	return rule(field, "required", "Ce champ est requis.", nil, func() bool {
		switch value.Kind() {
		case reflect.String:
			return strings.TrimSpace(value.String()) != ""
		case reflect.Slice, reflect.Map, reflect.Array:
			return value.Len() > 0
		case reflect.Pointer, reflect.Interface:
			return !value.IsNil()
		default:
			return !value.IsZero()
		}
	})
}

func minValidator(field string, value reflect.Value, params []string) Rule {
	if len(params) < 1 {
		return pass()
	}
	switch value.Kind() {
	case reflect.String:
		n, _ := strconv.Atoi(params[0])
		return rule(field, "min_length", fmt.Sprintf("Doit faire au moins %d caractères.", n),
			map[string]any{"min": n},
			func() bool { return utf8.RuneCountInString(strings.TrimSpace(value.String())) >= n })
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, _ := strconv.ParseInt(params[0], 10, 64)
		return rule(field, "min", fmt.Sprintf("Doit être au moins %d.", n),
			map[string]any{"min": n},
			func() bool { return value.Int() >= n })
	default:
		return pass()
	}
}

func maxValidator(field string, value reflect.Value, params []string) Rule {
	if len(params) < 1 {
		return pass()
	}
	switch value.Kind() {
	case reflect.String:
		n, _ := strconv.Atoi(params[0])
		return rule(field, "max_length", fmt.Sprintf("Doit faire au plus %d caractères.", n),
			map[string]any{"max": n},
			func() bool { return utf8.RuneCountInString(value.String()) <= n })
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, _ := strconv.ParseInt(params[0], 10, 64)
		return rule(field, "max", fmt.Sprintf("Doit être au plus %d.", n),
			map[string]any{"max": n},
			func() bool { return value.Int() <= n })
	default:
		return pass()
	}
}

func betweenValidator(field string, value reflect.Value, params []string) Rule {
	if len(params) < 2 {
		return pass()
	}
	switch value.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		lo, _ := strconv.ParseInt(params[0], 10, 64)
		hi, _ := strconv.ParseInt(params[1], 10, 64)
		return rule(field, "between", fmt.Sprintf("Doit être compris entre %d et %d.", lo, hi),
			map[string]any{"min": lo, "max": hi},
			func() bool { v := value.Int(); return v >= lo && v <= hi })
	default:
		return pass()
	}
}

// ValidEmail checks an address the way forms expect: a bare addr-spec
// without display name.
func ValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s && strings.Contains(s[strings.LastIndex(s, "@"):], ".")
}

// ValidURL accepts absolute http(s) URLs with a host.
func ValidURL(s string) bool {
	u, err := url.ParseRequestURI(strings.TrimSpace(s))
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func emailValidator(field string, value reflect.Value, _ []string) Rule {
	if value.Kind() != reflect.String {
		return pass()
	}
	return rule(field, "email", "Adresse email invalide.", nil, func() bool { return ValidEmail(value.String()) })
}

func urlValidator(field string, value reflect.Value, _ []string) Rule {
	if value.Kind() != reflect.String {
		return pass()
	}
	return rule(field, "url", "URL invalide.", nil, func() bool { return ValidURL(value.String()) })
}

func inValidator(field string, value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String {
		return pass()
	}
	return rule(field, "in", "Valeur non autorisée.", map[string]any{"values": strings.Join(params, ", ")},
		func() bool { return slices.Contains(params, value.String()) })
}
