package validator

import (
	"errors"
	"strings"
)

// ErrNotStruct is returned when ValidateStruct gets something other than a
// pointer to a struct.
var ErrNotStruct = errors.New("validator: must pass a pointer to struct")

// ValidationError describes one failed rule on one field.
type ValidationError struct {
	Field             string
	Message           string
	TranslationKey    string
	TranslationValues map[string]any
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors collects failures in field order.
type ValidationErrors []ValidationError

func (e *ValidationErrors) Add(err ValidationError) {
	*e = append(*e, err)
}

func (e ValidationErrors) IsEmpty() bool { return len(e) == 0 }

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, v := range e {
		msgs = append(msgs, v.Error())
	}
	return strings.Join(msgs, "; ")
}

// Fields maps each failing field to its first message. Forms render it inline.
func (e ValidationErrors) Fields() map[string]string {
	out := make(map[string]string, len(e))
	for _, v := range e {
		if _, ok := out[v.Field]; !ok {
			out[v.Field] = v.Message
		}
	}
	return out
}

// IsValidationError reports whether err carries ValidationErrors.
func IsValidationError(err error) bool {
	var ve ValidationErrors
	return errors.As(err, &ve)
}

// ExtractValidationErrors returns the ValidationErrors inside err, if any.
func ExtractValidationErrors(err error) ValidationErrors {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
