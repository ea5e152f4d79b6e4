package objectid

import (
	"database/sql/driver"
	"reflect"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ErrInvalid is the error returned when a value is not a hex-24 identifier.
var ErrInvalid = validation.NewError(string(InvalidIdentifier), DefaultMessage)

// IsObjectID validates that a value is a hex-24 identifier.
// Nil values pass; combine with validation.Required to demand presence.
var IsObjectID = NewRule()

// Rule is an ozzo-validation rule checking hex-24 identifiers.
//
// Nil values (nil interfaces, nil pointers, and driver.Valuers producing nil)
// are considered absent and pass. A driver.Valuer whose Value fails is
// rejected. The empty string does not pass.
type Rule struct {
	validator Validator
	label     string
	err       validation.Error
}

// NewRule returns a Rule that also accepts candidates recognized by the given
// converters.
func NewRule(converters ...Converter) Rule {
	return Rule{
		validator: NewValidator(converters...),
		label:     DefaultLabel,
		err:       ErrInvalid,
	}
}

// Validate checks if the given value is valid or not.
func (r Rule) Validate(value interface{}) error {
	for {
		if isAbsent(value) {
			return nil
		}

		if text, ok := r.validator.text(value); ok {
			if IsValid(text) {
				return nil
			}
			return r.error()
		}

		if rv := reflect.ValueOf(value); rv.Kind() == reflect.Ptr {
			value = rv.Elem().Interface()
			continue
		}

		// sql.NullString and friends. A Valuer that cannot produce a value
		// is not an identifier.
		if valuer, ok := value.(driver.Valuer); ok {
			v, err := valuer.Value()
			if err != nil {
				return r.error()
			}
			if v == nil {
				return nil
			}
			value = v
			continue
		}

		return r.error()
	}
}

// Label sets the label substituted into the error message.
func (r Rule) Label(label string) Rule {
	r.label = label
	return r
}

// Error sets the error message template for the rule. The template may use
// {{.label}}.
func (r Rule) Error(message string) Rule {
	r.err = r.err.SetMessage(message)
	return r
}

// ErrorObject sets the error struct for the rule.
func (r Rule) ErrorObject(err validation.Error) Rule {
	r.err = err
	return r
}

// Converters returns a copy of the rule that also consults converters.
func (r Rule) Converters(converters ...Converter) Rule {
	r.validator = r.validator.WithConverter(converters...)
	return r
}

func (r Rule) error() error {
	return withLabel(r.err, r.label)
}

func isAbsent(value interface{}) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// LabelErrors rewrites the INVALID_IDENTIFIER errors inside a
// validation.Errors (as returned by validation.ValidateStruct) so each one is
// labelled with its field key. Nested validation.Errors are handled
// recursively. Other errors are returned unchanged.
func LabelErrors(err error) error {
	errs, ok := err.(validation.Errors)
	if !ok {
		return err
	}

	labeled := make(validation.Errors, len(errs))
	for key, e := range errs {
		switch typed := e.(type) {
		case validation.Errors:
			labeled[key] = LabelErrors(typed)
		case validation.Error:
			if typed.Code() == string(InvalidIdentifier) {
				labeled[key] = withLabel(typed, key)
			} else {
				labeled[key] = typed
			}
		default:
			labeled[key] = e
		}
	}
	return labeled
}
