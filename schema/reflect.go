package schema

import (
	"reflect"
	"strings"
)

// Enumerator is implemented by named string types that enumerate their values.
//
//	type Method string
//
//	func (Method) EnumValues() []string { return []string{"GET", "POST"} }
type Enumerator interface {
	EnumValues() []string
}

var enumeratorType = reflect.TypeOf((*Enumerator)(nil)).Elem()

// TypeOf derives a type descriptor from a Go value.
func TypeOf(v any) *Type {
	return TypeFromReflect(reflect.TypeOf(v))
}

// TypeFromReflect derives a type descriptor from a reflect.Type.
//
// Struct fields use the json tag for their name and the jsonschema tag for
// metadata:
//
//	Rate  float64  `json:"rate" jsonschema:"required,description=Key rate value"`
//	Note  *string  `json:"note" jsonschema_description:"Free text, may contain commas"`
//	Tags  []string `json:"tags" jsonschema:"optional"`
//
// Pointers become nullable, slices become sequences ([]any is untyped), maps
// become free-form objects and named string types implementing Enumerator
// become enumerations. Anything else is opaque and rejected by Translate.
func TypeFromReflect(t reflect.Type) *Type {
	return typeFromReflect(t, make(map[reflect.Type]bool))
}

func typeFromReflect(t reflect.Type, visiting map[reflect.Type]bool) *Type {
	if t == nil {
		return Opaque("nil")
	}

	if t.Kind() == reflect.Ptr {
		return Nullable(typeFromReflect(t.Elem(), visiting))
	}

	if t.Kind() == reflect.String && t.Implements(enumeratorType) {
		values := reflect.Zero(t).Interface().(Enumerator).EnumValues()
		return Enum(t.Name(), values...)
	}

	switch t.Kind() {
	case reflect.Struct:
		if visiting[t] {
			return Opaque(t.String() + " (recursive)")
		}
		visiting[t] = true
		defer delete(visiting, t)
		return structType(t, visiting)
	case reflect.String:
		return String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Integer()
	case reflect.Float32, reflect.Float64:
		return Float()
	case reflect.Bool:
		return Boolean()
	case reflect.Slice, reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			// encoding/json writes byte slices as base64 strings
			return String()
		}
		if t.Elem().Kind() == reflect.Interface {
			return ArrayOf(nil)
		}
		return ArrayOf(typeFromReflect(t.Elem(), visiting))
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return Opaque(t.String())
		}
		return Object()
	default:
		return Opaque(t.String())
	}
}

func structType(t reflect.Type, visiting map[reflect.Type]bool) *Type {
	rec := Record(t.Name())
	if rec.Name == "" {
		rec.Name = "record"
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		// Skip unexported fields
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}

		fieldName := field.Name
		if jsonTag != "" {
			parts := strings.Split(jsonTag, ",")
			if parts[0] != "" {
				fieldName = parts[0]
			}
		}

		fieldType := typeFromReflect(field.Type, visiting)
		meta := parseJSONSchemaTag(field.Tag.Get("jsonschema"), fieldType)
		if desc, ok := field.Tag.Lookup("jsonschema_description"); ok {
			if meta == nil {
				meta = &Field{}
			}
			meta.Description = desc
		}

		rec.Fields = append(rec.Fields, RecordField{Name: fieldName, Type: fieldType, Meta: meta})
	}

	return rec
}

// parseJSONSchemaTag returns nil when the tag carries no metadata at all, so
// an untagged field stays distinguishable from one with an empty description.
func parseJSONSchemaTag(tag string, t *Type) *Field {
	if tag == "" {
		return nil
	}

	meta := &Field{}
	for _, part := range strings.Split(tag, ",") {
		part = strings.TrimSpace(part)

		switch {
		case part == "required":
			meta.Requirement = RequirementRequired
		case part == "optional":
			meta.Requirement = RequirementOptional
		case strings.HasPrefix(part, "description="):
			meta.Description = strings.TrimPrefix(part, "description=")
		case strings.HasPrefix(part, "default="):
			meta.Default = strings.TrimPrefix(part, "default=")
		case strings.HasPrefix(part, "enum="):
			// A pointer field is a nullable union; the enum applies to its value.
			target := t
			if alts := t.nonNull(); t.Kind == KindUnion && len(alts) == 1 && alts[0] != nil {
				target = alts[0]
			}
			if target.Kind == KindString {
				target.Kind = KindEnum
				target.Values = strings.Split(strings.TrimPrefix(part, "enum="), "|")
			}
		}
	}
	return meta
}
