package objectid

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/hashicorp-forge/objectid/pkg/schema"
)

// TypeName is the name the rule is registered under.
const TypeName = "objectId"

// Extension describes the objectId type for a schema.Registry. Rules built
// from it use the registry's INVALID_IDENTIFIER message template.
func Extension(converters ...Converter) schema.Extension {
	return schema.Extension{
		Type: TypeName,
		Messages: map[string]string{
			string(InvalidIdentifier): DefaultMessage,
		},
		New: func(messages map[string]string) validation.Rule {
			r := NewRule(converters...)
			if m, ok := messages[string(InvalidIdentifier)]; ok && m != "" {
				r = r.Error(m)
			}
			return r
		},
	}
}

// Extend returns a copy of r with the objectId type registered. r itself is
// not modified.
func Extend(r *schema.Registry, converters ...Converter) (*schema.Registry, error) {
	return r.Extend(Extension(converters...))
}
