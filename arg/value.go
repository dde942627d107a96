// Package arg defines the tagged value type event decoders and their
// user-registered listeners exchange across the registry boundary.
//
// A Value carries exactly one of its cases; Kind reports which.
package arg

import (
	"encoding/json/jsontext"
	"encoding/json/v2"
)

// Kind identifies which case a Value holds.
type Kind int

const (
	KindText Kind = iota
	KindU8
	KindU16
	KindU32
	KindU64
	KindBoolean
	KindVecText
	KindOptionText
	KindOptionValue
)

// String returns a human-readable name for k.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindU8:
		return "U8"
	case KindU16:
		return "U16"
	case KindU32:
		return "U32"
	case KindU64:
		return "U64"
	case KindBoolean:
		return "Boolean"
	case KindVecText:
		return "VecText"
	case KindOptionText:
		return "OptionText"
	case KindOptionValue:
		return "OptionValue"
	default:
		return "Unknown"
	}
}

// Value is a tagged union over the argument cases listeners exchange
// with event decoders. Exactly one field is meaningful, selected by
// Kind; the rest are zero values.
//
// OptionValue stores an arbitrary JSON document (object, array,
// string, number, bool or null), not just objects.
type Value struct {
	Kind Kind

	Text        string
	U8          uint8
	U16         uint16
	U32         uint32
	U64         uint64
	Boolean     bool
	VecText     []string
	OptionText  *string
	OptionValue jsontext.Value
}

// Text constructs a Value holding a string.
func Text(s string) Value { return Value{Kind: KindText, Text: s} }

// U8 constructs a Value holding an unsigned 8-bit integer.
func U8(v uint8) Value { return Value{Kind: KindU8, U8: v} }

// U16 constructs a Value holding an unsigned 16-bit integer.
func U16(v uint16) Value { return Value{Kind: KindU16, U16: v} }

// U32Value constructs a Value holding an unsigned 32-bit integer.
func U32Value(v uint32) Value { return Value{Kind: KindU32, U32: v} }

// U64Value constructs a Value holding an unsigned 64-bit integer.
func U64Value(v uint64) Value { return Value{Kind: KindU64, U64: v} }

// Bool constructs a Value holding a boolean.
func Bool(b bool) Value { return Value{Kind: KindBoolean, Boolean: b} }

// VecTextValue constructs a Value holding a sequence of strings.
func VecTextValue(v []string) Value { return Value{Kind: KindVecText, VecText: v} }

// OptionTextValue constructs a Value holding an optional string. A nil
// s represents the absent case.
func OptionTextValue(s *string) Value { return Value{Kind: KindOptionText, OptionText: s} }

// OptionValueOf constructs a Value holding an optional JSON document,
// marshaled with encoding/json/v2. A nil v marshals to the JSON
// literal null, the same representation InteractionResponse decodes an
// absent body to.
func OptionValueOf(v any) (Value, error) {
	if v == nil {
		return Value{Kind: KindOptionValue, OptionValue: jsontext.Value("null")}, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return Value{}, err
	}
	return Value{Kind: KindOptionValue, OptionValue: jsontext.Value(raw)}, nil
}

// AsOptionText returns the Value's OptionText case, or an error if Kind
// is not KindOptionText.
func (v Value) AsOptionText() (*string, error) {
	if v.Kind != KindOptionText {
		return nil, errKind(v.Kind, KindOptionText)
	}
	return v.OptionText, nil
}

// AsVecText returns the Value's VecText case, or an error if Kind is
// not KindVecText.
func (v Value) AsVecText() ([]string, error) {
	if v.Kind != KindVecText {
		return nil, errKind(v.Kind, KindVecText)
	}
	return v.VecText, nil
}

// AsOptionValue returns the Value's raw JSON document, or an error if
// Kind is not KindOptionValue.
func (v Value) AsOptionValue() (jsontext.Value, error) {
	if v.Kind != KindOptionValue {
		return nil, errKind(v.Kind, KindOptionValue)
	}
	return v.OptionValue, nil
}

func errKind(got, want Kind) error {
	return &kindError{got: got, want: want}
}

type kindError struct{ got, want Kind }

func (e *kindError) Error() string {
	return "arg: expected " + e.want.String() + ", got " + e.got.String()
}
