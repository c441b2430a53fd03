// Package schema translates tool parameter types into vendor-neutral schema nodes.
//
// A Type describes the declared type of a parameter or record field; a Field
// carries its metadata (description, requirement, default). Translate turns the
// pair into a Node, the unit every vendor adapter consumes.
//
// # Building Types
//
// Types are built explicitly:
//
//	method := schema.Enum("HTTPMethod", "GET", "POST")
//	rate := schema.Record("Rate",
//	    schema.Prop("date", schema.String(), schema.Required("Effective date")),
//	    schema.Prop("value", schema.Float(), schema.Required("Rate in percent")),
//	    schema.Prop("note", schema.Nullable(schema.String()), schema.Describe("Remark")),
//	)
//	rates := schema.ArrayOf(rate)
//
// or derived from Go types with TypeOf, which reads json and jsonschema tags.
//
// # Supported Types
//
//   - string, integer, float, boolean, null: leaf nodes
//   - enumerations: string nodes listing their values in declaration order
//   - sequences: array nodes; the element type must be declared
//   - records: object nodes with per-field descriptions and a required list
//   - nullable wrappers: collapse to the wrapped type's node
//
// Any other union, an untyped sequence, or an opaque type fails with an *Error
// whose Code identifies the problem:
//
//	_, err := schema.Translate(schema.ArrayOf(nil), nil)
//	errors.Is(err, schema.ErrUntypedSequence) // true
//
// # Requirements
//
// A Field's Requirement is authoritative when set. When unset, the field is
// required unless it has a default or its type is nullable. A field that is
// explicitly required and also declares a default is rejected.
//
// # Validation
//
// Node.Validate checks JSON arguments produced by a model against the node
// before they reach a tool handler.
package schema
