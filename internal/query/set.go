package query

import (
	"go.mongodb.org/mongo-driver/bson"
)

// Set accumulates the payload of a partial update. Nil inputs are skipped,
// so a field absent from the request never touches the stored document.
type Set struct {
	fields bson.D
}

func (s *Set) Text(field string, v *string) {
	if v != nil {
		s.add(field, Text(*v))
	}
}

func (s *Set) Int(field string, v *int) {
	if v != nil {
		s.add(field, Int(*v))
	}
}

func (s *Set) Bool(field string, v *bool) {
	if v != nil {
		s.add(field, Bool(*v))
	}
}

func (s *Set) TextList(field string, v *[]string) {
	if v != nil {
		s.add(field, TextList(*v))
	}
}

func (s *Set) add(field string, v Value) {
	s.fields = append(s.fields, bson.E{Key: field, Value: v.BSON()})
}

// Empty reports whether every input field was absent. Callers short-circuit
// on it and return the entity unchanged instead of issuing an update.
func (s *Set) Empty() bool {
	return len(s.fields) == 0
}

// Fields returns the raw field assignments, without the $set wrapper.
func (s *Set) Fields() bson.D {
	return s.fields
}

// Doc returns the full update document.
func (s *Set) Doc() bson.D {
	return bson.D{{Key: "$set", Value: s.fields}}
}
