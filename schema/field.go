package schema

// Requirement states whether a field must be supplied.
type Requirement int

const (
	// RequirementUnset derives the requirement from the field:
	// required unless a default is present or the type is nullable.
	RequirementUnset Requirement = iota
	RequirementRequired
	RequirementOptional
)

func (r Requirement) String() string {
	switch r {
	case RequirementRequired:
		return "required"
	case RequirementOptional:
		return "optional"
	default:
		return "unset"
	}
}

// Field is the metadata attached to a tool parameter or record field.
type Field struct {
	Description string
	Requirement Requirement

	// Default is informational only; it never reaches the schema.
	Default any
}

// Describe returns metadata with the given description and a derived requirement.
func Describe(description string) *Field {
	return &Field{Description: description}
}

// Required returns metadata for a field that must be supplied.
func Required(description string) *Field {
	return &Field{Description: description, Requirement: RequirementRequired}
}

// Optional returns metadata for a field that may be omitted.
func Optional(description string) *Field {
	return &Field{Description: description, Requirement: RequirementOptional}
}

// WithDefault returns a copy of f carrying a default value.
func (f *Field) WithDefault(v any) *Field {
	c := *f
	c.Default = v
	return &c
}

// resolveRequired decides whether a field of type t with metadata f is required.
// Explicit requirements win over default presence and nullability; an explicit
// requirement contradicted by a default is an error.
func resolveRequired(path string, t *Type, f *Field) (bool, error) {
	if f == nil {
		return !t.IsNullable(), nil
	}
	switch f.Requirement {
	case RequirementRequired:
		if f.Default != nil {
			return false, newError(CodeConflictingRequirement, path, t,
				"field is marked required but declares a default value")
		}
		return true, nil
	case RequirementOptional:
		return false, nil
	}
	if f.Default != nil {
		return false, nil
	}
	return !t.IsNullable(), nil
}

// IsRequired reports whether a field of type t with metadata f resolves to
// required. Errors are reported against path.
func IsRequired(path string, t *Type, f *Field) (bool, error) {
	return resolveRequired(path, t, f)
}
