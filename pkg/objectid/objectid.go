package objectid

import (
	"reflect"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Length is the number of hex characters in a textual identifier.
const Length = 24

// ErrorKind classifies a rejected candidate.
type ErrorKind string

// InvalidIdentifier is the only error kind: the candidate is not a 24-character
// hex string by any of the accepted input shapes.
const InvalidIdentifier ErrorKind = "INVALID_IDENTIFIER"

const (
	// DefaultLabel is the label used when a field name is not known.
	DefaultLabel = "value"

	// DefaultMessage is the ozzo-validation message template for
	// InvalidIdentifier. The "label" param holds the field label.
	DefaultMessage = `"{{.label}}" must be a valid 24-character hex ObjectId`
)

// TextConvertible is implemented by identifier types that expose a canonical
// text form. Only types that declare it explicitly are converted; a plain
// fmt.Stringer is not enough.
type TextConvertible interface {
	CanonicalText() string
}

// Converter returns the canonical text of candidates it recognizes. It is
// the integration point for identifier types from other libraries.
type Converter func(candidate any) (text string, ok bool)

// Validator decides whether candidates are hex-24 identifiers. The zero value
// is ready to use and accepts strings and TextConvertible values.
//
// A Validator is immutable and safe for concurrent use.
type Validator struct {
	converters []Converter
}

// NewValidator returns a Validator that also consults the given converters,
// in order, for candidates that are neither strings nor TextConvertible.
func NewValidator(converters ...Converter) Validator {
	return Validator{}.WithConverter(converters...)
}

// WithConverter returns a copy of v with additional converters appended.
func (v Validator) WithConverter(converters ...Converter) Validator {
	cs := make([]Converter, 0, len(v.converters)+len(converters))
	cs = append(cs, v.converters...)
	for _, c := range converters {
		if c != nil {
			cs = append(cs, c)
		}
	}
	return Validator{converters: cs}
}

// Validate checks a single candidate. It never panics on its own; a panic
// raised inside a candidate's CanonicalText or a Converter propagates.
func (v Validator) Validate(candidate any) Outcome {
	if text, ok := v.text(candidate); ok && IsValid(text) {
		return Outcome{value: candidate, accepted: true}
	}
	return Outcome{kind: InvalidIdentifier}
}

// text returns the comparison subject for candidate, or false when the
// candidate has no textual form.
func (v Validator) text(candidate any) (string, bool) {
	switch c := candidate.(type) {
	case nil:
		return "", false
	case string:
		return c, true
	case TextConvertible:
		if isAbsent(c) {
			return "", false
		}
		return c.CanonicalText(), true
	}

	for _, convert := range v.converters {
		if s, ok := convert(candidate); ok {
			return s, true
		}
	}

	// Named string types, e.g. `type HexID string`.
	if rv := reflect.ValueOf(candidate); rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}

// Validate checks candidate with the zero Validator.
func Validate(candidate any) Outcome {
	return Validator{}.Validate(candidate)
}

// IsValid reports whether s is exactly 24 characters of [0-9a-fA-F].
func IsValid(s string) bool {
	if len(s) != Length {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// Outcome is the result of validating one candidate: either accepted with the
// original candidate, or rejected with an ErrorKind.
type Outcome struct {
	value    any
	accepted bool
	kind     ErrorKind
}

// Accepted reports whether the candidate is a valid identifier.
func (o Outcome) Accepted() bool {
	return o.accepted
}

// Value returns the accepted candidate unchanged (an identifier object stays
// an object). It is nil for rejected outcomes.
func (o Outcome) Value() any {
	return o.value
}

// Kind returns the error kind of a rejected outcome, or "" when accepted.
func (o Outcome) Kind() ErrorKind {
	return o.kind
}

// Err returns nil for accepted outcomes, otherwise an ozzo-validation error
// whose message names label.
func (o Outcome) Err(label string) error {
	if o.accepted {
		return nil
	}
	return withLabel(ErrInvalid, label)
}

// withLabel returns a copy of err whose "label" param is set. The params map
// is copied so shared error values are never mutated.
func withLabel(err validation.Error, label string) validation.Error {
	if label == "" {
		label = DefaultLabel
	}
	params := make(map[string]interface{}, len(err.Params())+1)
	for k, v := range err.Params() {
		params[k] = v
	}
	params["label"] = label
	return err.SetParams(params)
}
