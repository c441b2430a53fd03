package schema

import (
	"strings"
)

// Kind identifies the shape of a Type.
type Kind int

// Type kinds.
const (
	KindInvalid Kind = iota
	KindString
	KindInteger
	KindFloat
	KindBoolean
	KindNull
	KindSequence
	KindEnum
	KindRecord
	KindUnion
	KindOpaque
)

var kindNames = [...]string{
	KindInvalid:  "invalid",
	KindString:   "string",
	KindInteger:  "integer",
	KindFloat:    "float",
	KindBoolean:  "boolean",
	KindNull:     "null",
	KindSequence: "sequence",
	KindEnum:     "enum",
	KindRecord:   "record",
	KindUnion:    "union",
	KindOpaque:   "opaque",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "invalid"
	}
	return kindNames[k]
}

// Type describes the declared type of a tool parameter or record field.
//
// Types are plain values: build them with the constructors in this package
// (String, Integer, ArrayOf, Enum, Record, Nullable, ...) or derive them from
// Go types with TypeOf.
type Type struct {
	Kind Kind

	// Name is the declared name of the type, used in error messages.
	// Optional for primitives and sequences.
	Name string

	// Elem is the element type of a sequence. A nil Elem is an untyped sequence.
	Elem *Type

	// Values are the literal values of an enumeration, in declaration order.
	Values []string

	// Fields are the fields of a record, in declaration order.
	Fields []RecordField

	// Alternatives are the branches of a union.
	Alternatives []*Type
}

// RecordField is one declared field of a record type.
type RecordField struct {
	Name string
	Type *Type
	Meta *Field
}

// String returns the type identity used in error messages.
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	if t.Name != "" {
		return t.Name
	}
	switch t.Kind {
	case KindSequence:
		if t.Elem == nil {
			return "list"
		}
		return "list[" + t.Elem.String() + "]"
	case KindUnion:
		parts := make([]string, len(t.Alternatives))
		for i, alt := range t.Alternatives {
			parts[i] = alt.String()
		}
		return strings.Join(parts, " | ")
	case KindEnum:
		return "enum[" + strings.Join(t.Values, ", ") + "]"
	case KindRecord:
		return "record"
	}
	return t.Kind.String()
}

// nonNull returns the union branches that are not the null type.
func (t *Type) nonNull() []*Type {
	var out []*Type
	for _, alt := range t.Alternatives {
		if alt != nil && alt.Kind == KindNull {
			continue
		}
		out = append(out, alt)
	}
	return out
}

// IsNullable reports whether t is a union that admits null.
func (t *Type) IsNullable() bool {
	if t == nil || t.Kind != KindUnion {
		return false
	}
	return len(t.nonNull()) < len(t.Alternatives)
}

// String returns the string primitive.
func String() *Type { return &Type{Kind: KindString} }

// Integer returns the integer primitive.
func Integer() *Type { return &Type{Kind: KindInteger} }

// Float returns the floating-point primitive.
func Float() *Type { return &Type{Kind: KindFloat} }

// Boolean returns the boolean primitive.
func Boolean() *Type { return &Type{Kind: KindBoolean} }

// Null returns the null primitive.
func Null() *Type { return &Type{Kind: KindNull} }

// ArrayOf returns a sequence of elem. Passing nil yields an untyped sequence,
// which the translator rejects.
func ArrayOf(elem *Type) *Type {
	return &Type{Kind: KindSequence, Elem: elem}
}

// Enum returns a named enumeration with values in declaration order.
func Enum(name string, values ...string) *Type {
	return &Type{Kind: KindEnum, Name: name, Values: values}
}

// Record returns a named record with the given fields in declaration order.
func Record(name string, fields ...RecordField) *Type {
	return &Type{Kind: KindRecord, Name: name, Fields: fields}
}

// Object returns an anonymous record with no fields, a free-form object.
func Object() *Type {
	return &Type{Kind: KindRecord, Name: "object"}
}

// Prop declares a record field.
func Prop(name string, t *Type, meta *Field) RecordField {
	return RecordField{Name: name, Type: t, Meta: meta}
}

// Nullable returns the union of t and null.
func Nullable(t *Type) *Type {
	return &Type{Kind: KindUnion, Alternatives: []*Type{t, Null()}}
}

// Union returns a union of the given alternatives.
func Union(alternatives ...*Type) *Type {
	return &Type{Kind: KindUnion, Alternatives: alternatives}
}

// Opaque returns a named type outside the supported set.
func Opaque(name string) *Type {
	return &Type{Kind: KindOpaque, Name: name}
}
