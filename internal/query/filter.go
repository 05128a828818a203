package query

import (
	"go.mongodb.org/mongo-driver/bson"
)

// Filter accumulates an equality filter over the fields present in a
// search request.
type Filter struct {
	fields bson.D
}

func (f *Filter) Text(field string, v *string) {
	if v != nil {
		f.add(field, Text(*v))
	}
}

func (f *Filter) Int(field string, v *int) {
	if v != nil {
		f.add(field, Int(*v))
	}
}

func (f *Filter) add(field string, v Value) {
	f.fields = append(f.fields, bson.E{Key: field, Value: v.BSON()})
}

// Empty reports whether no criteria were provided. What that means is a
// per-entity policy: the book search returns an empty list, the user
// search rejects the request.
func (f *Filter) Empty() bool {
	return len(f.fields) == 0
}

func (f *Filter) Doc() bson.D {
	if f.fields == nil {
		return bson.D{}
	}
	return f.fields
}
