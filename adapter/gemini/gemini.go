// Package gemini renders tool schemas as google.golang.org/genai declarations.
package gemini

import (
	"encoding/json"
	"fmt"
	"slices"

	"google.golang.org/genai"

	"github.com/keyrates/toolschema/adapter/jsonmap"
	"github.com/keyrates/toolschema/protocol"
	"github.com/keyrates/toolschema/schema"
	"github.com/keyrates/toolschema/tool"
)

var nodeTypes = map[schema.NodeType]genai.Type{
	schema.TypeString:  genai.TypeString,
	schema.TypeInteger: genai.TypeInteger,
	schema.TypeNumber:  genai.TypeNumber,
	schema.TypeBoolean: genai.TypeBoolean,
	schema.TypeNull:    genai.TypeNULL,
	schema.TypeArray:   genai.TypeArray,
	schema.TypeObject:  genai.TypeObject,
}

// Option configures declaration rendering.
type Option func(*options)

type options struct {
	jsonSchema bool
}

// WithJSONSchema emits parameters through ParametersJsonSchema as a plain
// JSON Schema map instead of a typed genai.Schema.
func WithJSONSchema() Option {
	return func(o *options) {
		o.jsonSchema = true
	}
}

// Schema renders a node as a genai.Schema. Object properties keep their
// declaration order in PropertyOrdering.
func Schema(n *schema.Node) *genai.Schema {
	if n == nil {
		return nil
	}

	s := &genai.Schema{
		Type:        nodeTypes[n.Type],
		Description: n.Description,
	}
	if len(n.Enum) > 0 {
		s.Enum = slices.Clone(n.Enum)
		s.Format = "enum"
	}
	if n.Items != nil {
		s.Items = Schema(n.Items)
	}
	if n.Type == schema.TypeObject {
		s.Properties = make(map[string]*genai.Schema, len(n.Properties))
		for name, prop := range n.Properties {
			s.Properties[name] = Schema(prop)
		}
		if len(n.Order) > 0 {
			s.PropertyOrdering = slices.Clone(n.Order)
		}
		if len(n.Required) > 0 {
			s.Required = slices.Clone(n.Required)
		}
	}
	return s
}

// FunctionDeclaration renders a tool as a genai function declaration.
func FunctionDeclaration(s *tool.Schema, opts ...Option) *genai.FunctionDeclaration {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	decl := &genai.FunctionDeclaration{
		Name:        s.Name,
		Description: s.Description,
	}
	if o.jsonSchema {
		decl.ParametersJsonSchema = jsonmap.Parameters(s)
	} else {
		decl.Parameters = Schema(s.Parameters)
	}
	return decl
}

// Tool bundles the declarations of several tools into one genai.Tool.
func Tool(schemas []*tool.Schema, opts ...Option) *genai.Tool {
	decls := make([]*genai.FunctionDeclaration, len(schemas))
	for i, s := range schemas {
		decls[i] = FunctionDeclaration(s, opts...)
	}
	return &genai.Tool{FunctionDeclarations: decls}
}

// Call converts a Gemini function call into a protocol call.
func Call(fc *genai.FunctionCall) (*protocol.Call, error) {
	if fc == nil {
		return nil, protocol.NewInvalidRequest("gemini: nil function call")
	}
	args := fc.Args
	if args == nil {
		args = map[string]any{}
	}
	raw, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("gemini: encode arguments for %s: %w", fc.Name, err)
	}
	return &protocol.Call{
		ID:        fc.ID,
		Name:      fc.Name,
		Arguments: raw,
		Vendor:    protocol.VendorGemini,
	}, nil
}

// Calls extracts every function call from a model response content.
func Calls(content *genai.Content) ([]*protocol.Call, error) {
	if content == nil {
		return nil, nil
	}
	var calls []*protocol.Call
	for _, part := range content.Parts {
		if part == nil || part.FunctionCall == nil {
			continue
		}
		call, err := Call(part.FunctionCall)
		if err != nil {
			return nil, err
		}
		calls = append(calls, call)
	}
	return calls, nil
}

// Response renders a tool result as the function response part sent back to
// the model.
func Response(res *protocol.Result) *genai.Part {
	return &genai.Part{
		FunctionResponse: &genai.FunctionResponse{
			ID:       res.ID,
			Name:     res.Name,
			Response: map[string]any{"output": res.Content},
		},
	}
}
