// Package jsonschema renders tool schemas as JSON Schema documents with
// properties kept in declaration order.
package jsonschema

import (
	"slices"

	"github.com/invopop/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/keyrates/toolschema/schema"
	"github.com/keyrates/toolschema/tool"
)

// Option customises a rendered document.
type Option func(*options)

type options struct {
	closed  bool
	version bool
}

// WithClosedObjects forbids properties that were not declared.
func WithClosedObjects() Option {
	return func(o *options) { o.closed = true }
}

// WithVersion stamps the document with the draft 2020-12 "$schema" URI.
func WithVersion() Option {
	return func(o *options) { o.version = true }
}

// Convert renders a node.
func Convert(n *schema.Node, opts ...Option) *jsonschema.Schema {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	s := convert(n, o)
	if s != nil && o.version {
		s.Version = jsonschema.Version
	}
	return s
}

func convert(n *schema.Node, o *options) *jsonschema.Schema {
	if n == nil {
		return nil
	}

	s := &jsonschema.Schema{
		Type:        string(n.Type),
		Description: n.Description,
	}
	for _, v := range n.Enum {
		s.Enum = append(s.Enum, v)
	}
	if n.Items != nil {
		s.Items = convert(n.Items, o)
	}
	if n.Type == schema.TypeObject {
		props := orderedmap.New[string, *jsonschema.Schema](len(n.Order))
		for _, name := range n.Order {
			props.Set(name, convert(n.Properties[name], o))
		}
		s.Properties = props
		s.Required = slices.Clone(n.Required)
		if o.closed {
			s.AdditionalProperties = jsonschema.FalseSchema
		}
	}
	return s
}

// Parameters renders the parameter object of a tool.
func Parameters(s *tool.Schema, opts ...Option) *jsonschema.Schema {
	params := Convert(s.Parameters, opts...)
	params.Required = slices.Clone(s.Required)
	return params
}

// Document renders a whole tool: the parameter object titled with the tool
// name and described by the tool description.
func Document(s *tool.Schema, opts ...Option) *jsonschema.Schema {
	doc := Parameters(s, opts...)
	doc.Title = s.Name
	doc.Description = s.Description
	return doc
}
