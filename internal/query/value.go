// Package query builds the update documents, equality filters and
// aggregation pipelines issued against the store. All constructors are
// pure; nothing here touches a collection.
package query

// Kind tags the value types an update or filter document may carry.
type Kind int

const (
	KindText Kind = iota
	KindInt
	KindBool
	KindTextList
)

// Value is a tagged union over the field types stored in documents.
type Value struct {
	kind Kind
	text string
	num  int
	flag bool
	list []string
}

func Text(s string) Value { return Value{kind: KindText, text: s} }

func Int(i int) Value { return Value{kind: KindInt, num: i} }

func Bool(b bool) Value { return Value{kind: KindBool, flag: b} }

func TextList(l []string) Value { return Value{kind: KindTextList, list: l} }

func (v Value) Kind() Kind { return v.kind }

// BSON unpacks the tagged value into the type the driver encodes.
func (v Value) BSON() any {
	switch v.kind {
	case KindInt:
		return v.num
	case KindBool:
		return v.flag
	case KindTextList:
		return v.list
	default:
		return v.text
	}
}
