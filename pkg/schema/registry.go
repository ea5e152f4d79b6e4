// Package schema holds named ozzo-validation rule types so they can be
// declared by name, the way a schema language declares field types.
//
// A Registry is never modified in place: Extend and WithMessage return a new
// Registry and leave the receiver untouched, so registries can be shared
// between goroutines and composed freely.
package schema

import (
	"errors"
	"fmt"
	"sort"
	"text/template"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	// ErrInvalidExtension is returned for extensions missing a type name or
	// constructor.
	ErrInvalidExtension = errors.New("invalid extension")

	// ErrDuplicateType is returned when a type name is registered twice.
	ErrDuplicateType = errors.New("type already registered")

	// ErrUnknownType is returned when looking up an unregistered type.
	ErrUnknownType = errors.New("unknown type")

	// ErrUnknownMessage is returned when overriding a message code no
	// registered type declares.
	ErrUnknownMessage = errors.New("unknown message code")

	// ErrEmptyMessage is returned for an empty message template.
	ErrEmptyMessage = errors.New("message template is empty")
)

// Extension declares a named rule type.
type Extension struct {
	// Type is the name the rule is declared by (e.g. "objectId").
	Type string

	// Messages are the default message templates keyed by error code.
	Messages map[string]string

	// New builds a rule. It receives the registry's current templates for
	// the codes listed in Messages.
	New func(messages map[string]string) validation.Rule
}

// Registry is an immutable set of named rule types and message templates.
type Registry struct {
	types    map[string]Extension
	messages map[string]string
	owners   map[string]string // message code -> type name
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		types:    map[string]Extension{},
		messages: map[string]string{},
		owners:   map[string]string{},
	}
}

// Extend returns a new registry with ext registered.
func (r *Registry) Extend(ext Extension) (*Registry, error) {
	if r == nil {
		r = NewRegistry()
	}
	if ext.Type == "" {
		return nil, fmt.Errorf("%w: type name is required", ErrInvalidExtension)
	}
	if ext.New == nil {
		return nil, fmt.Errorf("%w: %s: constructor is required", ErrInvalidExtension, ext.Type)
	}
	if _, ok := r.types[ext.Type]; ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateType, ext.Type)
	}
	for code := range ext.Messages {
		if owner, ok := r.owners[code]; ok {
			return nil, fmt.Errorf("%w: message %s already declared by %s",
				ErrDuplicateType, code, owner)
		}
	}

	next := r.clone()
	messages := make(map[string]string, len(ext.Messages))
	for code, tmpl := range ext.Messages {
		if err := checkTemplate(tmpl); err != nil {
			return nil, fmt.Errorf("%w: %s: message %s: %v", ErrInvalidExtension, ext.Type, code, err)
		}
		messages[code] = tmpl
		next.messages[code] = tmpl
		next.owners[code] = ext.Type
	}
	ext.Messages = messages
	next.types[ext.Type] = ext
	return next, nil
}

// WithMessage returns a new registry with the template for code replaced.
// The template must be non-empty and parse as a text/template.
func (r *Registry) WithMessage(code, tmpl string) (*Registry, error) {
	if r == nil {
		r = NewRegistry()
	}
	if _, ok := r.owners[code]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMessage, code)
	}
	if err := checkTemplate(tmpl); err != nil {
		return nil, fmt.Errorf("message %s: %w", code, err)
	}

	next := r.clone()
	next.messages[code] = tmpl
	return next, nil
}

// Rule builds a new rule of the named type.
func (r *Registry) Rule(name string) (validation.Rule, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, name)
	}
	ext, ok := r.types[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, name)
	}

	messages := make(map[string]string, len(ext.Messages))
	for code := range ext.Messages {
		messages[code] = r.messages[code]
	}
	return ext.New(messages), nil
}

// MustRule is like Rule but panics if the type is not registered.
func (r *Registry) MustRule(name string) validation.Rule {
	rule, err := r.Rule(name)
	if err != nil {
		panic(err)
	}
	return rule
}

// Has returns true if a type is registered under name.
func (r *Registry) Has(name string) bool {
	if r == nil {
		return false
	}
	_, ok := r.types[name]
	return ok
}

// Types returns the registered type names in sorted order.
func (r *Registry) Types() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Message returns the current template for code.
func (r *Registry) Message(code string) (string, bool) {
	if r == nil {
		return "", false
	}
	tmpl, ok := r.messages[code]
	return tmpl, ok
}

func (r *Registry) clone() *Registry {
	next := NewRegistry()
	for k, v := range r.types {
		next.types[k] = v
	}
	for k, v := range r.messages {
		next.messages[k] = v
	}
	for k, v := range r.owners {
		next.owners[k] = v
	}
	return next
}

// checkTemplate parses tmpl the way ozzo-validation renders error messages,
// which would otherwise panic on a malformed template.
func checkTemplate(tmpl string) error {
	if tmpl == "" {
		return ErrEmptyMessage
	}
	if _, err := template.New("err").Parse(tmpl); err != nil {
		return fmt.Errorf("invalid message template: %w", err)
	}
	return nil
}
