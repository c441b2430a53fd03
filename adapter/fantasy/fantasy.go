// Package fantasy renders tool schemas as charm.land/fantasy function tools.
package fantasy

import (
	"encoding/json"
	"fmt"

	"charm.land/fantasy"

	"github.com/keyrates/toolschema/adapter/jsonmap"
	"github.com/keyrates/toolschema/protocol"
	"github.com/keyrates/toolschema/tool"
)

// FunctionTool renders a tool as a fantasy function tool.
func FunctionTool(s *tool.Schema) fantasy.FunctionTool {
	return fantasy.FunctionTool{
		Name:        s.Name,
		Description: s.Description,
		InputSchema: jsonmap.Parameters(s),
	}
}

// Tools renders several tools for a fantasy call, keeping their order.
func Tools(schemas []*tool.Schema) []fantasy.Tool {
	out := make([]fantasy.Tool, len(schemas))
	for i, s := range schemas {
		out[i] = FunctionTool(s)
	}
	return out
}

// Call converts fantasy tool call content into a protocol call.
func Call(c fantasy.ToolCallContent) (*protocol.Call, error) {
	args := json.RawMessage(c.Input)
	if c.Input != "" && !json.Valid(args) {
		return nil, protocol.NewInvalidArguments(
			fmt.Sprintf("fantasy: tool call %s has malformed input", c.ToolName))
	}
	return &protocol.Call{
		ID:        c.ToolCallID,
		Name:      c.ToolName,
		Arguments: args,
		Vendor:    protocol.VendorFantasy,
	}, nil
}

// Calls extracts every tool call from a fantasy response.
func Calls(resp *fantasy.Response) ([]*protocol.Call, error) {
	if resp == nil {
		return nil, nil
	}
	var calls []*protocol.Call
	for _, content := range resp.Content {
		tc, ok := content.(fantasy.ToolCallContent)
		if !ok {
			continue
		}
		call, err := Call(tc)
		if err != nil {
			return nil, err
		}
		calls = append(calls, call)
	}
	return calls, nil
}

// ResultPart renders a tool result as the part returned to the model.
func ResultPart(res *protocol.Result) (fantasy.ToolResultPart, error) {
	text, err := json.Marshal(res.Content)
	if err != nil {
		return fantasy.ToolResultPart{}, fmt.Errorf("fantasy: encode result of %s: %w", res.Name, err)
	}
	return fantasy.ToolResultPart{
		ToolCallID: res.ID,
		Output:     fantasy.ToolResultOutputContentText{Text: string(text)},
	}, nil
}
