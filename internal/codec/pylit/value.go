// Package pylit decodes and encodes the literal notation used for nested
// fields inside raw table cells: lists, tuples, dicts, quoted strings,
// numbers, True, False and None.
package pylit

// Kind enumerates the decoded value types.
type Kind int

// Value kinds.
const (
	None Kind = iota
	Bool
	Int
	Float
	String
	List
	Dict
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	case List:
		return "list"
	case Dict:
		return "dict"
	default:
		return "unknown"
	}
}

// Value is a decoded literal. Only the field matching Kind is meaningful.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	list []Value
	dict map[string]Value
}

// NoneValue returns the None literal.
func NoneValue() Value { return Value{kind: None} }

// BoolValue wraps a bool.
func BoolValue(b bool) Value { return Value{kind: Bool, b: b} }

// IntValue wraps an integer.
func IntValue(i int64) Value { return Value{kind: Int, i: i} }

// FloatValue wraps a float.
func FloatValue(f float64) Value { return Value{kind: Float, f: f} }

// StringValue wraps a string.
func StringValue(s string) Value { return Value{kind: String, s: s} }

// ListValue wraps a list of values.
func ListValue(items []Value) Value { return Value{kind: List, list: items} }

// DictValue wraps a string-keyed mapping.
func DictValue(m map[string]Value) Value { return Value{kind: Dict, dict: m} }

// Kind returns the value type.
func (v Value) Kind() Kind { return v.kind }

// Bool returns the bool payload.
func (v Value) Bool() bool { return v.b }

// Int returns the integer payload.
func (v Value) Int() int64 { return v.i }

// Float returns the float payload; integers are widened.
func (v Value) Float() float64 {
	if v.kind == Int {
		return float64(v.i)
	}
	return v.f
}

// Str returns the string payload.
func (v Value) Str() string { return v.s }

// List returns list items (tuples decode as lists).
func (v Value) List() []Value { return v.list }

// Dict returns the mapping.
func (v Value) Dict() map[string]Value { return v.dict }

// Get returns a dict entry.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != Dict {
		return Value{}, false
	}
	e, ok := v.dict[key]
	return e, ok
}

// IsNumber reports whether the value is an Int or a Float.
func (v Value) IsNumber() bool { return v.kind == Int || v.kind == Float }
