// Package jsonmap renders schema nodes as plain JSON Schema maps, the form
// accepted by vendors that take parameters as map[string]any.
package jsonmap

import (
	"slices"

	"github.com/keyrates/toolschema/schema"
	"github.com/keyrates/toolschema/tool"
)

// Convert renders a node. Object nodes always carry "properties"; "required"
// is emitted only when non-empty.
func Convert(n *schema.Node) map[string]any {
	if n == nil {
		return nil
	}

	result := map[string]any{"type": string(n.Type)}

	if n.Description != "" {
		result["description"] = n.Description
	}
	if len(n.Enum) > 0 {
		result["enum"] = slices.Clone(n.Enum)
	}
	if n.Items != nil {
		result["items"] = Convert(n.Items)
	}
	if n.Type == schema.TypeObject {
		props := make(map[string]any, len(n.Properties))
		for name, prop := range n.Properties {
			props[name] = Convert(prop)
		}
		result["properties"] = props
		if len(n.Required) > 0 {
			result["required"] = slices.Clone(n.Required)
		}
	}

	return result
}

// Parameters renders the parameter object of a tool. The top-level object
// always lists "required", empty for tools without required parameters.
func Parameters(s *tool.Schema) map[string]any {
	params := Convert(s.Parameters)
	params["required"] = slices.Clone(s.Required)
	return params
}

// Function is a tool in the common {name, description, parameters} shape.
type Function struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// FromSchema renders a tool in the common function shape.
func FromSchema(s *tool.Schema) Function {
	return Function{
		Name:        s.Name,
		Description: s.Description,
		Parameters:  Parameters(s),
	}
}
