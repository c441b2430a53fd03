package protocol

import (
	"encoding/json"
	"fmt"
)

// Vendor names a model vendor wire format.
type Vendor string

// Supported vendors.
const (
	VendorGemini     Vendor = "gemini"
	VendorOpenAI     Vendor = "openai"
	VendorFantasy    Vendor = "fantasy"
	VendorGigaChat   Vendor = "gigachat"
	VendorJSONSchema Vendor = "jsonschema"
)

// Vendors lists the supported vendors in a stable order.
func Vendors() []Vendor {
	return []Vendor{VendorGemini, VendorOpenAI, VendorFantasy, VendorGigaChat, VendorJSONSchema}
}

// ParseVendor returns the vendor with the given name.
func ParseVendor(name string) (Vendor, error) {
	for _, v := range Vendors() {
		if string(v) == name {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown vendor %q", name)
}

// Call is a model's request to invoke a tool.
type Call struct {
	ID        string          `json:"id,omitempty"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`

	// Vendor records which adapter produced the call. Empty for local calls.
	Vendor Vendor `json:"vendor,omitempty"`
}

// Args returns the call arguments, substituting an empty object when the
// model sent none.
func (c *Call) Args() json.RawMessage {
	if len(c.Arguments) == 0 || string(c.Arguments) == "null" {
		return json.RawMessage(`{}`)
	}
	return c.Arguments
}

// NewCall builds a call from decoded arguments.
func NewCall(id, name string, args map[string]any) (*Call, error) {
	if args == nil {
		args = map[string]any{}
	}
	raw, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("encode arguments for %s: %w", name, err)
	}
	return &Call{ID: id, Name: name, Arguments: raw}, nil
}

// Result is the outcome of a successful tool invocation.
type Result struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Content any    `json:"content"`
}

// NewResult creates the result for call.
func NewResult(call *Call, content any) *Result {
	return &Result{
		ID:      call.ID,
		Name:    call.Name,
		Content: content,
	}
}
