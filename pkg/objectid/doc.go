// Package objectid validates 24-character hexadecimal document identifiers
// (the ObjectId format used by document databases) and plugs that check into
// ozzo-validation as the named type "objectId".
//
// # Accepted Inputs
//
// A candidate is compared as text when it is:
//
//  1. A string (or a value whose underlying kind is string).
//  2. A non-nil value implementing TextConvertible.
//  3. A value accepted by one of the Converters the Validator was built with.
//     Converters let driver identifier types be accepted without this package
//     importing the driver (see the mongoid subpackage).
//
// Everything else (numbers, booleans, nil, slices, maps, plain structs) is
// rejected. A value is accepted only when its text is exactly 24 characters
// drawn from [0-9a-fA-F].
//
// # Usage Examples
//
//	// Standalone check
//	out := objectid.Validate("507f191e810c19729de860ea")
//	out.Accepted() // true
//	out.Value()    // the original candidate, not a normalized copy
//
//	// As an ozzo-validation rule
//	err := validation.ValidateStruct(&req,
//	    validation.Field(&req.ID, validation.Required, objectid.IsObjectID),
//	)
//	err = objectid.LabelErrors(err) // `id: "id" must be a valid 24-character hex ObjectId.`
//
//	// Registered as a named type
//	reg, _ := objectid.Extend(schema.NewRegistry())
//	rule, _ := reg.Rule(objectid.TypeName)
//
// # Error Reporting
//
// Every rejection, whatever the cause (length, alphabet, type), is reported as
// the single error kind INVALID_IDENTIFIER with the message
// `"<label>" must be a valid 24-character hex ObjectId`.
package objectid
