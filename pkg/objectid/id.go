package objectid

import (
	"database/sql/driver"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidHex is returned when parsing text that is not a hex-24 identifier.
var ErrInvalidHex = errors.New("invalid ObjectID hex")

// ObjectID is a 12-byte document identifier whose canonical text form is 24
// lowercase hex characters (e.g. "507f191e810c19729de860ea").
//
// ObjectID implements TextConvertible, so values of this type are accepted
// wherever a hex-24 string is. It has the same layout as the document
// database drivers' ObjectID types and converts to them directly.
type ObjectID [12]byte

// NilObjectID is the zero ObjectID.
var NilObjectID ObjectID

// ParseHex parses a hex-24 identifier. Upper and mixed case are accepted;
// the result always renders in lowercase.
func ParseHex(s string) (ObjectID, error) {
	if s == "" {
		return NilObjectID, fmt.Errorf("ObjectID cannot be empty")
	}
	if !IsValid(s) {
		return NilObjectID, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}

	var id ObjectID
	if _, err := hex.Decode(id[:], []byte(s)); err != nil {
		return NilObjectID, fmt.Errorf("%w: %v", ErrInvalidHex, err)
	}
	return id, nil
}

// MustParseHex parses an ObjectID from string, panicking on error.
// This is useful for test fixtures and constants where the value is known valid.
func MustParseHex(s string) ObjectID {
	id, err := ParseHex(s)
	if err != nil {
		panic(fmt.Sprintf("invalid ObjectID: %s: %v", s, err))
	}
	return id
}

// Hex returns the 24-character lowercase hex form.
func (id ObjectID) Hex() string {
	return hex.EncodeToString(id[:])
}

// String returns the same value as Hex.
func (id ObjectID) String() string {
	return id.Hex()
}

// CanonicalText implements TextConvertible.
func (id ObjectID) CanonicalText() string {
	return id.Hex()
}

// IsZero returns true if this is the zero ObjectID.
func (id ObjectID) IsZero() bool {
	return id == NilObjectID
}

// Equal returns true if two ObjectIDs are equal.
func (id ObjectID) Equal(other ObjectID) bool {
	return id == other
}

// MarshalJSON implements json.Marshaler.
// ObjectIDs are serialized as hex strings; the zero value as null.
func (id ObjectID) MarshalJSON() ([]byte, error) {
	if id.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(id.Hex())
}

// UnmarshalJSON implements json.Unmarshaler.
func (id *ObjectID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = NilObjectID
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("ObjectID must be a string: %w", err)
	}
	if s == "" {
		*id = NilObjectID
		return nil
	}
	parsed, err := ParseHex(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Scan implements sql.Scanner for database reading.
// Supports hex text as string or []byte, and raw 12-byte binary columns.
func (id *ObjectID) Scan(value interface{}) error {
	if value == nil {
		*id = NilObjectID
		return nil
	}

	switch v := value.(type) {
	case string:
		if v == "" {
			*id = NilObjectID
			return nil
		}
		parsed, err := ParseHex(v)
		if err != nil {
			return fmt.Errorf("cannot scan string into ObjectID: %w", err)
		}
		*id = parsed
		return nil
	case []byte:
		switch len(v) {
		case 0:
			*id = NilObjectID
			return nil
		case len(id):
			copy(id[:], v)
			return nil
		}
		parsed, err := ParseHex(string(v))
		if err != nil {
			return fmt.Errorf("cannot scan bytes into ObjectID: %w", err)
		}
		*id = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into ObjectID", value)
	}
}

// Value implements driver.Valuer for database writing.
// Returns nil for the zero ObjectID, the hex string otherwise.
func (id ObjectID) Value() (driver.Value, error) {
	if id.IsZero() {
		return nil, nil
	}
	return id.Hex(), nil
}
