// Package gigachat renders tool schemas in the GigaChat function format.
//
// GigaChat has no official Go client, so the wire types are declared here and
// marshal to the JSON the chat completions endpoint expects in "functions".
package gigachat

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/keyrates/toolschema/protocol"
	"github.com/keyrates/toolschema/schema"
	"github.com/keyrates/toolschema/tool"
)

// Property is one node of a GigaChat parameter schema.
type Property struct {
	Type        string               `json:"type"`
	Description string               `json:"description,omitempty"`
	Enum        []string             `json:"enum,omitempty"`
	Items       *Property            `json:"items,omitempty"`
	Properties  map[string]*Property `json:"properties,omitempty"`
	Required    []string             `json:"required,omitempty"`
}

// FunctionParameters is the top-level parameter object of a function.
type FunctionParameters struct {
	Type       string               `json:"type"`
	Properties map[string]*Property `json:"properties"`
	Required   []string             `json:"required"`
}

// FewShotExample pairs a user request with the arguments the model should
// produce for it.
type FewShotExample struct {
	Request string         `json:"request"`
	Params  map[string]any `json:"params"`
}

// Function is a GigaChat function description.
type Function struct {
	Name             string              `json:"name"`
	Description      string              `json:"description"`
	Parameters       FunctionParameters  `json:"parameters"`
	FewShotExamples  []FewShotExample    `json:"few_shot_examples,omitempty"`
	ReturnParameters *FunctionParameters `json:"return_parameters,omitempty"`
}

// Option customises a rendered function.
type Option func(*Function) error

// WithExamples attaches few-shot examples to the function.
func WithExamples(examples ...FewShotExample) Option {
	return func(f *Function) error {
		f.FewShotExamples = append(f.FewShotExamples, examples...)
		return nil
	}
}

// WithReturn describes the function's result with the given record type.
func WithReturn(t *schema.Type) Option {
	return func(f *Function) error {
		n, err := schema.TranslateAt("return", t, nil)
		if err != nil {
			return err
		}
		if n.Type != schema.TypeObject {
			return schema.NewError(schema.CodeUnsupportedType, "return", "return parameters must be an object")
		}
		params, err := parameters(n, "return")
		if err != nil {
			return err
		}
		f.ReturnParameters = &params
		return nil
	}
}

// ConvertFunction renders a compiled tool.
func ConvertFunction(s *tool.Schema, opts ...Option) (*Function, error) {
	params, err := parameters(s.Parameters, "")
	if err != nil {
		return nil, fmt.Errorf("gigachat: %s: %w", s.Name, err)
	}
	params.Required = slices.Clone(s.Required)

	f := &Function{
		Name:        s.Name,
		Description: s.Description,
		Parameters:  params,
	}
	for _, opt := range opts {
		if err := opt(f); err != nil {
			return nil, fmt.Errorf("gigachat: %s: %w", s.Name, err)
		}
	}
	return f, nil
}

// Functions renders several tools, keeping their order.
func Functions(schemas []*tool.Schema) ([]*Function, error) {
	out := make([]*Function, 0, len(schemas))
	for _, s := range schemas {
		f, err := ConvertFunction(s)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func parameters(n *schema.Node, path string) (FunctionParameters, error) {
	props, err := properties(n, path)
	if err != nil {
		return FunctionParameters{}, err
	}
	return FunctionParameters{
		Type:       "object",
		Properties: props,
		Required:   slices.Clone(n.Required),
	}, nil
}

func properties(n *schema.Node, path string) (map[string]*Property, error) {
	props := make(map[string]*Property, len(n.Properties))
	for _, name := range n.Order {
		p, err := Convert(n.Properties[name], joinPath(path, name))
		if err != nil {
			return nil, err
		}
		props[name] = p
	}
	return props, nil
}

// Convert renders a single node. GigaChat has no null type, so a bare null
// node is rejected.
func Convert(n *schema.Node, path string) (*Property, error) {
	if n.Type == schema.TypeNull {
		return nil, schema.NewError(schema.CodeUnsupportedType, path, "null type is not supported by GigaChat")
	}

	p := &Property{
		Type:        string(n.Type),
		Description: n.Description,
		Enum:        slices.Clone(n.Enum),
	}
	if n.Items != nil {
		items, err := Convert(n.Items, path+"[]")
		if err != nil {
			return nil, err
		}
		p.Items = items
	}
	if n.Type == schema.TypeObject {
		props, err := properties(n, path)
		if err != nil {
			return nil, err
		}
		p.Properties = props
		p.Required = slices.Clone(n.Required)
	}
	return p, nil
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

// FunctionCall is the function_call field of an assistant message. GigaChat
// sends the arguments as a JSON object, not a string.
type FunctionCall struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// Call converts a GigaChat function call. GigaChat calls carry no ID, so
// functionsStateID, when present in the response, is used instead.
func Call(fc *FunctionCall, functionsStateID string) (*protocol.Call, error) {
	if fc == nil {
		return nil, protocol.NewInvalidRequest("gigachat: message has no function call")
	}
	args := fc.Arguments
	if len(args) > 0 && !json.Valid(args) {
		return nil, protocol.NewInvalidArguments(
			fmt.Sprintf("gigachat: function call %s has malformed arguments", fc.Name))
	}
	return &protocol.Call{
		ID:        functionsStateID,
		Name:      fc.Name,
		Arguments: args,
		Vendor:    protocol.VendorGigaChat,
	}, nil
}

// Message is a chat message in the role "function", carrying a tool result
// back to the model.
type Message struct {
	Role    string `json:"role"`
	Name    string `json:"name,omitempty"`
	Content string `json:"content"`
}

// FunctionMessage renders a tool result. The content must be a JSON document.
func FunctionMessage(res *protocol.Result) (Message, error) {
	content, err := json.Marshal(res.Content)
	if err != nil {
		return Message{}, fmt.Errorf("gigachat: encode result of %s: %w", res.Name, err)
	}
	return Message{Role: "function", Name: res.Name, Content: string(content)}, nil
}
