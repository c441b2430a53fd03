package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/keyrates/toolschema/protocol"
	"github.com/keyrates/toolschema/schema"
)

var (
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
)

// Tool is a compiled tool: its schema plus an optional handler.
// A Tool is immutable once built and safe for concurrent use.
type Tool struct {
	schema        *Schema
	inputType     reflect.Type
	inputIsPtr    bool
	validateInput bool
	handler       reflect.Value
	hasHandler    bool
	hasContext    bool
}

// Name returns the tool name.
func (t *Tool) Name() string {
	return t.schema.Name
}

// Schema returns the compiled schema. It is computed once at build time.
func (t *Tool) Schema() *Schema {
	return t.schema
}

// Execute runs the tool handler with JSON arguments.
func (t *Tool) Execute(ctx context.Context, args json.RawMessage) (any, error) {
	if !t.hasHandler {
		return nil, protocol.NewInternalError(fmt.Sprintf("tool %s has no handler", t.Name()))
	}
	if len(args) == 0 {
		args = json.RawMessage(`{}`)
	}

	if t.validateInput {
		if err := t.schema.Parameters.Validate(args); err != nil {
			return nil, protocol.NewInvalidArguments(fmt.Sprintf("input validation failed: %v", err)).WithData(err)
		}
	}

	var in []reflect.Value
	if t.hasContext {
		in = append(in, reflect.ValueOf(ctx))
	}
	if t.inputType != nil {
		inputPtr := reflect.New(t.inputType)
		if err := json.Unmarshal(args, inputPtr.Interface()); err != nil {
			return nil, protocol.NewInvalidArguments(fmt.Sprintf("failed to parse input: %v", err))
		}
		if t.inputIsPtr {
			in = append(in, inputPtr)
		} else {
			in = append(in, inputPtr.Elem())
		}
	}

	out := t.handler.Call(in)

	if errVal := out[1].Interface(); errVal != nil {
		return nil, errVal.(error)
	}
	return out[0].Interface(), nil
}

// Builder provides a fluent API for defining tools.
type Builder struct {
	name        string
	description string
	params      []Param
	validate    bool
	handler     any
	registry    *Registry
	err         error
}

// New starts building a tool with the given name.
func New(name string) *Builder {
	return &Builder{name: name}
}

// Description sets the tool description.
func (b *Builder) Description(desc string) *Builder {
	b.description = desc
	return b
}

// Param declares the next parameter.
func (b *Builder) Param(name string, t *schema.Type, meta *schema.Field) *Builder {
	b.params = append(b.params, Param{Name: name, Type: t, Meta: meta})
	return b
}

// Params declares several parameters at once.
func (b *Builder) Params(params ...Param) *Builder {
	b.params = append(b.params, params...)
	return b
}

// Input declares one parameter per field of the struct v, read from its json
// and jsonschema tags.
func (b *Builder) Input(v any) *Builder {
	if b.err != nil {
		return b
	}
	rt := reflect.TypeOf(v)
	for rt != nil && rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}
	if rt == nil || rt.Kind() != reflect.Struct {
		b.err = fmt.Errorf("tool %s: input must be a struct, got %v", b.name, rt)
		return b
	}
	t := schema.TypeFromReflect(rt)
	if t.Kind != schema.KindRecord {
		b.err = fmt.Errorf("tool %s: input %s cannot be described: %s", b.name, rt, t)
		return b
	}
	b.params = append(b.params, paramsFromRecord(t)...)
	return b
}

// ValidateInput enables validation of call arguments against the compiled
// schema before the handler runs. Invalid arguments fail with
// protocol.CodeInvalidArguments.
func (b *Builder) ValidateInput() *Builder {
	b.validate = true
	return b
}

// Handler sets the tool handler function.
// Handler signature must be one of:
//   - func(input T) (R, error)
//   - func(ctx context.Context, input T) (R, error)
//   - func(ctx context.Context) (R, error)
//   - func() (R, error)
//
// T is decoded from the call arguments. When no parameters were declared and
// T is a struct, the parameters are derived from T as with Input.
func (b *Builder) Handler(fn any) *Builder {
	b.handler = fn
	return b
}

// Build validates the definition, compiles the schema and, for builders
// obtained from a Registry, registers the tool.
func (b *Builder) Build() (*Tool, error) {
	if b.err != nil {
		return nil, b.err
	}

	t := &Tool{validateInput: b.validate}
	if b.handler != nil {
		if err := t.bindHandler(b.handler); err != nil {
			return nil, fmt.Errorf("tool %s: %w", b.name, err)
		}
		if len(b.params) == 0 && t.inputType != nil && t.inputType.Kind() == reflect.Struct {
			b.Input(reflect.Zero(t.inputType).Interface())
			if b.err != nil {
				return nil, b.err
			}
		}
	}

	s, err := Compile(b.name, b.description, b.params...)
	if err != nil {
		return nil, err
	}
	t.schema = s

	if b.registry != nil {
		if err := b.registry.Register(t); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// MustBuild is like Build but panics on error. Use it for tool definitions
// fixed at compile time.
func (b *Builder) MustBuild() *Tool {
	t, err := b.Build()
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Tool) bindHandler(fn any) error {
	fnType := reflect.TypeOf(fn)
	if fnType.Kind() != reflect.Func {
		return fmt.Errorf("handler must be a function, got %s", fnType.Kind())
	}

	numIn := fnType.NumIn()
	if numIn > 2 {
		return fmt.Errorf("handler must have at most 2 parameters, got %d", numIn)
	}

	next := 0
	if numIn > 0 && fnType.In(0).Implements(contextType) {
		t.hasContext = true
		next = 1
	} else if numIn == 2 {
		return fmt.Errorf("first parameter must be context.Context when using 2 parameters")
	}

	if next < numIn {
		inputType := fnType.In(next)
		if inputType.Kind() == reflect.Ptr {
			inputType = inputType.Elem()
			t.inputIsPtr = true
		}
		t.inputType = inputType
	}

	if fnType.NumOut() != 2 {
		return fmt.Errorf("handler must return (result, error), got %d return values", fnType.NumOut())
	}
	if !fnType.Out(1).Implements(errorType) {
		return fmt.Errorf("second return value must be error")
	}

	t.handler = reflect.ValueOf(fn)
	t.hasHandler = true
	return nil
}
