// Package mongoid lets MongoDB driver ObjectIDs pass objectid validation.
//
// bson.ObjectID.String returns `ObjectID("...")` rather than the bare hex, so
// driver values are converted through Hex instead:
//
//	rule := objectid.NewRule(mongoid.Converter)
//	err := rule.Validate(bson.NewObjectID()) // nil
package mongoid

import (
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/hashicorp-forge/objectid/pkg/objectid"
)

var _ objectid.Converter = Converter

// Converter returns the hex form of bson.ObjectID and non-nil
// *bson.ObjectID candidates.
func Converter(candidate any) (string, bool) {
	switch id := candidate.(type) {
	case bson.ObjectID:
		return id.Hex(), true
	case *bson.ObjectID:
		if id == nil {
			return "", false
		}
		return id.Hex(), true
	}
	return "", false
}

// FromBSON converts a driver ObjectID.
func FromBSON(id bson.ObjectID) objectid.ObjectID {
	return objectid.ObjectID(id)
}

// ToBSON converts to a driver ObjectID.
func ToBSON(id objectid.ObjectID) bson.ObjectID {
	return bson.ObjectID(id)
}
