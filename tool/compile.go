package tool

import (
	"fmt"
	"slices"
	"strings"

	"github.com/keyrates/toolschema/schema"
)

// Param declares one tool parameter.
type Param struct {
	Name string
	Type *schema.Type
	Meta *schema.Field
}

// P is shorthand for a Param literal.
func P(name string, t *schema.Type, meta *schema.Field) Param {
	return Param{Name: name, Type: t, Meta: meta}
}

// Schema is the compiled, vendor-neutral description of a tool.
// Parameters is always an object node; Required lists the required parameter
// names in declaration order.
type Schema struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Parameters  *schema.Node `json:"parameters"`
	Required    []string     `json:"required"`
}

// ParamNames returns the parameter names in declaration order.
func (s *Schema) ParamNames() []string {
	return slices.Clone(s.Parameters.Order)
}

// Param returns the node of the named parameter.
func (s *Schema) Param(name string) (*schema.Node, bool) {
	n, ok := s.Parameters.Properties[name]
	return n, ok
}

// Compile builds the schema of a tool from its declared parameters.
//
// The tool and every parameter must carry a description. Parameters are
// translated in declaration order and the first failure aborts compilation;
// the returned error wraps a *schema.Error.
func Compile(name, description string, params ...Param) (*Schema, error) {
	if strings.TrimSpace(name) == "" {
		return nil, schema.NewError(schema.CodeMissingName, "", "tool has no name")
	}
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("compile %s: %w", name,
			schema.NewError(schema.CodeMissingDescription, "", "tool has no description"))
	}

	parameters := schema.NewObject()
	for i, p := range params {
		if err := compileParam(parameters, i, p); err != nil {
			return nil, fmt.Errorf("compile %s: %w", name, err)
		}
	}

	return &Schema{
		Name:        name,
		Description: description,
		Parameters:  parameters,
		Required:    slices.Clone(parameters.Required),
	}, nil
}

func compileParam(parameters *schema.Node, pos int, p Param) error {
	if p.Name == "" {
		return schema.NewError(schema.CodeMissingName, fmt.Sprintf("#%d", pos), "parameter has no name")
	}
	if _, dup := parameters.Properties[p.Name]; dup {
		return schema.NewError(schema.CodeDuplicateParameter, p.Name, "parameter declared twice")
	}
	if p.Meta == nil {
		return schema.NewError(schema.CodeMissingDescription, p.Name, "parameter has no metadata")
	}
	if strings.TrimSpace(p.Meta.Description) == "" {
		return schema.NewError(schema.CodeMissingDescription, p.Name, "parameter has no description")
	}

	node, err := schema.TranslateAt(p.Name, p.Type, p.Meta)
	if err != nil {
		return err
	}
	required, err := schema.IsRequired(p.Name, p.Type, p.Meta)
	if err != nil {
		return err
	}
	parameters.Set(p.Name, node, required)
	return nil
}

// paramsFromRecord turns the fields of a record type into parameters.
func paramsFromRecord(t *schema.Type) []Param {
	params := make([]Param, len(t.Fields))
	for i, f := range t.Fields {
		params[i] = Param{Name: f.Name, Type: f.Type, Meta: f.Meta}
	}
	return params
}
