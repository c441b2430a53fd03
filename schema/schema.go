// Package schema translates type descriptors into vendor-neutral schema nodes.
package schema

// NodeType is the type tag of a schema node.
type NodeType string

// Node types.
const (
	TypeString  NodeType = "string"
	TypeInteger NodeType = "integer"
	TypeNumber  NodeType = "number"
	TypeBoolean NodeType = "boolean"
	TypeNull    NodeType = "null"
	TypeArray   NodeType = "array"
	TypeObject  NodeType = "object"
)

// Node is one node of a translated schema tree.
//
// Enumerations are string nodes with a non-empty Enum. Object nodes keep their
// property declaration order in Order; Required is always a subset of the
// Properties keys.
type Node struct {
	Type        NodeType         `json:"type"`
	Description string           `json:"description,omitempty"`
	Enum        []string         `json:"enum,omitempty"`
	Items       *Node            `json:"items,omitempty"`
	Properties  map[string]*Node `json:"properties,omitempty"`
	Order       []string         `json:"-"`
	Required    []string         `json:"required,omitempty"`
}

// IsEnum reports whether n is an enumeration node.
func (n *Node) IsEnum() bool {
	return n != nil && n.Type == TypeString && len(n.Enum) > 0
}

// NewObject returns an empty object node.
func NewObject() *Node {
	return &Node{
		Type:       TypeObject,
		Properties: make(map[string]*Node),
		Order:      []string{},
		Required:   []string{},
	}
}

// Set adds or replaces the property name, keeping first-declaration order.
func (n *Node) Set(name string, prop *Node, required bool) {
	if _, exists := n.Properties[name]; !exists {
		n.Order = append(n.Order, name)
	}
	n.Properties[name] = prop
	if required {
		n.Required = append(n.Required, name)
	}
}

// Walk calls fn for n and every node below it, depth first in declaration order.
func (n *Node) Walk(fn func(path string, node *Node)) {
	n.walk("", fn)
}

func (n *Node) walk(path string, fn func(string, *Node)) {
	if n == nil {
		return
	}
	fn(path, n)
	if n.Items != nil {
		n.Items.walk(path+"[]", fn)
	}
	for _, name := range n.Order {
		n.Properties[name].walk(joinPath(path, name), fn)
	}
}

var primitives = map[Kind]NodeType{
	KindString:  TypeString,
	KindInteger: TypeInteger,
	KindFloat:   TypeNumber,
	KindBoolean: TypeBoolean,
	KindNull:    TypeNull,
}

// Translate converts a type descriptor and optional field metadata into a node.
//
// Only metadata attached directly to t contributes a description: sequence
// items never inherit the enclosing field's description, while record fields
// use their own declared metadata.
func Translate(t *Type, meta *Field) (*Node, error) {
	return translate("", t, meta, make(map[*Type]bool))
}

// TranslateAt is Translate with errors reported against the given path.
func TranslateAt(path string, t *Type, meta *Field) (*Node, error) {
	return translate(path, t, meta, make(map[*Type]bool))
}

func translate(path string, t *Type, meta *Field, visiting map[*Type]bool) (*Node, error) {
	if t == nil {
		return nil, newError(CodeUnsupportedType, path, nil, "type is not declared")
	}

	var description string
	if meta != nil {
		description = meta.Description
	}

	switch t.Kind {
	case KindUnion:
		alts := t.nonNull()
		if len(alts) != 1 || len(t.Alternatives) != 2 {
			return nil, newError(CodeUnsupportedUnion, path, t,
				"only a union of one type with null is supported")
		}
		return translate(path, alts[0], meta, visiting)

	case KindEnum:
		if len(t.Values) == 0 {
			return nil, newError(CodeUnsupportedType, path, t, "enumeration declares no values")
		}
		values := make([]string, len(t.Values))
		copy(values, t.Values)
		return &Node{Type: TypeString, Description: description, Enum: values}, nil

	case KindSequence:
		if t.Elem == nil {
			return nil, newError(CodeUntypedSequence, path, t,
				"sequence must declare its element type")
		}
		items, err := translate(path+"[]", t.Elem, nil, visiting)
		if err != nil {
			return nil, err
		}
		return &Node{Type: TypeArray, Description: description, Items: items}, nil

	case KindRecord:
		// A type graph built by hand can refer back to itself.
		if visiting[t] {
			return nil, newError(CodeUnsupportedType, path, t, "recursive type is not supported")
		}
		visiting[t] = true
		defer delete(visiting, t)
		return translateRecord(path, t, description, visiting)
	}

	if nt, ok := primitives[t.Kind]; ok {
		return &Node{Type: nt, Description: description}, nil
	}

	return nil, newError(CodeUnsupportedType, path, t, "unsupported type")
}

func translateRecord(path string, t *Type, description string, visiting map[*Type]bool) (*Node, error) {
	node := NewObject()
	node.Description = description

	for _, f := range t.Fields {
		fieldPath := joinPath(path, f.Name)
		if f.Name == "" {
			return nil, newError(CodeMissingName, fieldPath, t, "record field has no name")
		}
		if _, dup := node.Properties[f.Name]; dup {
			return nil, newError(CodeDuplicateParameter, fieldPath, t, "record field declared twice")
		}

		var meta *Field
		if f.Meta != nil {
			meta = &Field{Description: f.Meta.Description, Requirement: f.Meta.Requirement, Default: f.Meta.Default}
		}

		prop, err := translate(fieldPath, f.Type, meta, visiting)
		if err != nil {
			return nil, err
		}
		required, err := resolveRequired(fieldPath, f.Type, meta)
		if err != nil {
			return nil, err
		}
		node.Set(f.Name, prop, required)
	}

	return node, nil
}
