package schema

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTranslate_Primitives(t *testing.T) {
	tests := []struct {
		name string
		typ  *Type
		want NodeType
	}{
		{"string", String(), TypeString},
		{"integer", Integer(), TypeInteger},
		{"float", Float(), TypeNumber},
		{"boolean", Boolean(), TypeBoolean},
		{"null", Null(), TypeNull},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := Translate(tt.typ, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			want := &Node{Type: tt.want}
			if diff := cmp.Diff(want, node); diff != "" {
				t.Errorf("node mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTranslate_Description(t *testing.T) {
	node, err := Translate(String(), Describe("Document title"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if node.Type != TypeString {
		t.Errorf("Type = %q, want %q", node.Type, TypeString)
	}
	if node.Description != "Document title" {
		t.Errorf("Description = %q, want %q", node.Description, "Document title")
	}
}

func TestTranslate_Nullable(t *testing.T) {
	meta := Describe("Optional value")
	types := []*Type{
		String(),
		Integer(),
		Enum("Status", "a", "b"),
		ArrayOf(Float()),
		Record("Rate", Prop("value", Float(), Required("Value"))),
	}

	for _, typ := range types {
		t.Run(typ.String(), func(t *testing.T) {
			plain, err := Translate(typ, meta)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			nullable, err := Translate(Nullable(typ), meta)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(plain, nullable); diff != "" {
				t.Errorf("nullable node differs (-plain +nullable):\n%s", diff)
			}
		})
	}

	t.Run("null first", func(t *testing.T) {
		node, err := Translate(Union(Null(), String()), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if node.Type != TypeString {
			t.Errorf("Type = %q, want %q", node.Type, TypeString)
		}
	})
}

func TestTranslate_Enum(t *testing.T) {
	t.Run("preserves declaration order", func(t *testing.T) {
		node, err := Translate(Enum("Letters", "c", "a", "b", "a"), Describe("Letters"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if node.Type != TypeString {
			t.Errorf("Type = %q, want %q", node.Type, TypeString)
		}
		if diff := cmp.Diff([]string{"c", "a", "b", "a"}, node.Enum); diff != "" {
			t.Errorf("Enum mismatch (-want +got):\n%s", diff)
		}
		if !node.IsEnum() {
			t.Error("expected IsEnum to be true")
		}
		if node.Description != "Letters" {
			t.Errorf("Description = %q, want %q", node.Description, "Letters")
		}
	})

	t.Run("rejects empty enumeration", func(t *testing.T) {
		_, err := Translate(Enum("Empty"), nil)
		if !errors.Is(err, ErrUnsupportedType) {
			t.Fatalf("expected ErrUnsupportedType, got %v", err)
		}
	})

	t.Run("copies values", func(t *testing.T) {
		typ := Enum("Status", "on", "off")
		node, _ := Translate(typ, nil)
		typ.Values[0] = "changed"
		if node.Enum[0] != "on" {
			t.Errorf("node shares values with descriptor")
		}
	})
}

func TestTranslate_Sequence(t *testing.T) {
	t.Run("translates element type", func(t *testing.T) {
		node, err := Translate(ArrayOf(String()), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if node.Type != TypeArray {
			t.Errorf("Type = %q, want %q", node.Type, TypeArray)
		}
		if node.Items == nil || node.Items.Type != TypeString {
			t.Fatalf("Items = %+v, want string node", node.Items)
		}
	})

	t.Run("field description stays on the array", func(t *testing.T) {
		elem := Record("Rate", Prop("value", Float(), Required("Value")))
		node, err := Translate(ArrayOf(elem), Describe("Rates"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if node.Description != "Rates" {
			t.Errorf("Description = %q, want %q", node.Description, "Rates")
		}

		item, err := Translate(elem, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff(item, node.Items); diff != "" {
			t.Errorf("item mismatch (-want +got):\n%s", diff)
		}
		if node.Items.Description != "" {
			t.Errorf("item inherited description %q", node.Items.Description)
		}
	})

	t.Run("rejects untyped sequence", func(t *testing.T) {
		_, err := Translate(ArrayOf(nil), nil)
		if !errors.Is(err, ErrUntypedSequence) {
			t.Fatalf("expected ErrUntypedSequence, got %v", err)
		}
		if !strings.Contains(err.Error(), "list") {
			t.Errorf("error should name the type, got: %v", err)
		}
	})

	t.Run("rejects untyped nested sequence", func(t *testing.T) {
		_, err := TranslateAt("matrix", ArrayOf(ArrayOf(nil)), nil)
		if !errors.Is(err, ErrUntypedSequence) {
			t.Fatalf("expected ErrUntypedSequence, got %v", err)
		}
		var schemaErr *Error
		if !errors.As(err, &schemaErr) {
			t.Fatalf("expected *Error, got %T", err)
		}
		if schemaErr.Path != "matrix[]" {
			t.Errorf("Path = %q, want %q", schemaErr.Path, "matrix[]")
		}
	})
}

func TestTranslate_Record(t *testing.T) {
	t.Run("collects required fields", func(t *testing.T) {
		node, err := Translate(Record("Pair",
			Prop("a", String(), Required("A")),
			Prop("b", Integer(), Optional("B")),
		), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if node.Type != TypeObject {
			t.Errorf("Type = %q, want %q", node.Type, TypeObject)
		}
		if diff := cmp.Diff([]string{"a"}, node.Required); diff != "" {
			t.Errorf("Required mismatch (-want +got):\n%s", diff)
		}
		if _, ok := node.Properties["a"]; !ok {
			t.Error("expected 'a' property")
		}
		if _, ok := node.Properties["b"]; !ok {
			t.Error("expected 'b' property")
		}
		if diff := cmp.Diff([]string{"a", "b"}, node.Order); diff != "" {
			t.Errorf("Order mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("derives requirement from defaults and nullability", func(t *testing.T) {
		node, err := Translate(Record("Profile",
			Prop("name", String(), Describe("Name")),
			Prop("age", Integer(), nil),
			Prop("email", Nullable(String()), Describe("Optional email")),
			Prop("locale", String(), Describe("Locale").WithDefault("ru")),
			Prop("phone", Nullable(String()), Required("Phone, may be null")),
		), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff([]string{"name", "age", "phone"}, node.Required); diff != "" {
			t.Errorf("Required mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("nested fields carry their own descriptions", func(t *testing.T) {
		inner := Record("Inner", Prop("x", String(), Describe("inner x")))
		node, err := Translate(Record("Outer",
			Prop("inner", inner, Describe("outer field")),
			Prop("bare", String(), nil),
		), Describe("root"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if node.Description != "root" {
			t.Errorf("Description = %q, want %q", node.Description, "root")
		}
		innerNode := node.Properties["inner"]
		if innerNode.Description != "outer field" {
			t.Errorf("inner.Description = %q, want %q", innerNode.Description, "outer field")
		}
		if got := innerNode.Properties["x"].Description; got != "inner x" {
			t.Errorf("inner.x.Description = %q, want %q", got, "inner x")
		}
		if got := node.Properties["bare"].Description; got != "" {
			t.Errorf("bare.Description = %q, want empty", got)
		}
	})

	t.Run("empty record", func(t *testing.T) {
		node, err := Translate(Object(), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if node.Type != TypeObject {
			t.Errorf("Type = %q, want %q", node.Type, TypeObject)
		}
		if node.Properties == nil || len(node.Properties) != 0 {
			t.Errorf("Properties = %v, want empty map", node.Properties)
		}
		if node.Required == nil || len(node.Required) != 0 {
			t.Errorf("Required = %v, want empty list", node.Required)
		}
	})

	t.Run("required is subset of properties", func(t *testing.T) {
		node, err := Translate(Record("Deep",
			Prop("a", Record("A", Prop("b", ArrayOf(Record("B", Prop("c", String(), nil))), nil)), nil),
		), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		node.Walk(func(path string, n *Node) {
			for _, name := range n.Required {
				if _, ok := n.Properties[name]; !ok {
					t.Errorf("%s: required %q is not a property", path, name)
				}
			}
		})
	})

	t.Run("rejects conflicting requirement", func(t *testing.T) {
		_, err := Translate(Record("Bad",
			Prop("x", String(), Required("X").WithDefault("y")),
		), nil)
		if !errors.Is(err, ErrConflictingRequirement) {
			t.Fatalf("expected ErrConflictingRequirement, got %v", err)
		}
	})

	t.Run("rejects duplicate fields", func(t *testing.T) {
		_, err := Translate(Record("Dup",
			Prop("x", String(), nil),
			Prop("x", Integer(), nil),
		), nil)
		if !errors.Is(err, ErrDuplicateParameter) {
			t.Fatalf("expected ErrDuplicateParameter, got %v", err)
		}
	})

	t.Run("reports nested field path", func(t *testing.T) {
		_, err := Translate(Record("Outer",
			Prop("inner", Record("Inner", Prop("bad", Opaque("complex128"), nil)), nil),
		), nil)
		var schemaErr *Error
		if !errors.As(err, &schemaErr) {
			t.Fatalf("expected *Error, got %v", err)
		}
		if schemaErr.Path != "inner.bad" {
			t.Errorf("Path = %q, want %q", schemaErr.Path, "inner.bad")
		}
		if schemaErr.Type != "complex128" {
			t.Errorf("Type = %q, want %q", schemaErr.Type, "complex128")
		}
	})
}

func TestTranslate_Unions(t *testing.T) {
	tests := []struct {
		name string
		typ  *Type
	}{
		{"two non-null", Union(String(), Integer())},
		{"three way", Union(String(), Integer(), Null())},
		{"nested nullable", Union(Nullable(String()), Integer())},
		{"single branch", Union(String())},
		{"null only", Union(Null(), Null())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Translate(tt.typ, nil)
			if !errors.Is(err, ErrUnsupportedUnion) {
				t.Fatalf("expected ErrUnsupportedUnion, got %v", err)
			}
		})
	}
}

func TestTranslate_Unsupported(t *testing.T) {
	t.Run("opaque type", func(t *testing.T) {
		_, err := Translate(Opaque("complex128"), nil)
		if !errors.Is(err, ErrUnsupportedType) {
			t.Fatalf("expected ErrUnsupportedType, got %v", err)
		}
		if !strings.Contains(err.Error(), "complex128") {
			t.Errorf("error should name the type, got: %v", err)
		}
	})

	t.Run("nil type", func(t *testing.T) {
		_, err := Translate(nil, nil)
		if !errors.Is(err, ErrUnsupportedType) {
			t.Fatalf("expected ErrUnsupportedType, got %v", err)
		}
	})

	t.Run("zero kind", func(t *testing.T) {
		_, err := Translate(&Type{}, nil)
		if !errors.Is(err, ErrUnsupportedType) {
			t.Fatalf("expected ErrUnsupportedType, got %v", err)
		}
	})

	t.Run("self-referential record", func(t *testing.T) {
		linked := Record("Linked")
		linked.Fields = append(linked.Fields,
			Prop("next", Nullable(linked), Describe("Next element")))

		_, err := Translate(linked, nil)
		if !errors.Is(err, ErrUnsupportedType) {
			t.Fatalf("expected ErrUnsupportedType, got %v", err)
		}
		if !strings.Contains(err.Error(), "Linked") || !strings.Contains(err.Error(), "next") {
			t.Errorf("error should name the type and path, got: %v", err)
		}
	})

	t.Run("cycle through a sequence", func(t *testing.T) {
		tree := Record("Tree")
		tree.Fields = append(tree.Fields,
			Prop("children", ArrayOf(tree), Required("Subtrees")))

		_, err := Translate(tree, nil)
		if !errors.Is(err, ErrUnsupportedType) {
			t.Fatalf("expected ErrUnsupportedType, got %v", err)
		}
	})

	t.Run("shared record is not a cycle", func(t *testing.T) {
		money := Record("Money", Prop("amount", Float(), Required("Amount")))
		node, err := Translate(Record("Range",
			Prop("low", money, Required("Lower bound")),
			Prop("high", money, Required("Upper bound")),
		), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff([]string{"low", "high"}, node.Required); diff != "" {
			t.Errorf("Required mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestTranslate_Idempotent(t *testing.T) {
	typ := Record("Upload",
		Prop("method", Enum("HTTPMethod", "GET", "POST"), Required("Verb")),
		Prop("rates", ArrayOf(Record("Rate", Prop("value", Float(), Required("Value")))), Describe("Rates")),
		Prop("data", Nullable(Object()), Describe("Body")),
	)

	first, err := Translate(typ, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Translate(typ, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("translations differ (-first +second):\n%s", diff)
	}
}

func TestError(t *testing.T) {
	t.Run("formats path and type", func(t *testing.T) {
		err := &Error{Code: CodeUnsupportedType, Path: "data", Type: "complex128", Message: "unsupported type"}
		want := "schema: data: unsupported type (got complex128)"
		if err.Error() != want {
			t.Errorf("Error() = %q, want %q", err.Error(), want)
		}
	})

	t.Run("falls back to code", func(t *testing.T) {
		err := NewError(CodeMissingName, "", "")
		if err.Error() != "schema: missing_name" {
			t.Errorf("Error() = %q", err.Error())
		}
	})

	t.Run("compares by code", func(t *testing.T) {
		err := &Error{Code: CodeUntypedSequence, Path: "x"}
		if !errors.Is(err, ErrUntypedSequence) {
			t.Error("expected errors.Is to match by code")
		}
		if errors.Is(err, ErrUnsupportedType) {
			t.Error("expected different codes not to match")
		}
	})
}
