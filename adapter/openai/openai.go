// Package openai renders tool schemas as github.com/openai/openai-go tool params.
package openai

import (
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/shared"

	"github.com/keyrates/toolschema/adapter/jsonmap"
	"github.com/keyrates/toolschema/protocol"
	"github.com/keyrates/toolschema/tool"
)

// Parameters renders the parameter object of a tool.
func Parameters(s *tool.Schema) shared.FunctionParameters {
	return shared.FunctionParameters(jsonmap.Parameters(s))
}

// FunctionDefinition renders a tool as an OpenAI function definition.
func FunctionDefinition(s *tool.Schema) shared.FunctionDefinitionParam {
	return shared.FunctionDefinitionParam{
		Name:        s.Name,
		Description: openai.String(s.Description),
		Parameters:  Parameters(s),
	}
}

// Tool renders a tool as a chat completion tool param.
func Tool(s *tool.Schema) openai.ChatCompletionToolParam {
	return openai.ChatCompletionToolParam{
		Function: FunctionDefinition(s),
	}
}

// Tools renders several tools, keeping their order.
func Tools(schemas []*tool.Schema) []openai.ChatCompletionToolParam {
	out := make([]openai.ChatCompletionToolParam, len(schemas))
	for i, s := range schemas {
		out[i] = Tool(s)
	}
	return out
}

// Call converts an OpenAI tool call into a protocol call. The arguments are
// passed through as the model produced them.
func Call(tc openai.ChatCompletionMessageToolCall) *protocol.Call {
	return &protocol.Call{
		ID:        tc.ID,
		Name:      tc.Function.Name,
		Arguments: json.RawMessage(tc.Function.Arguments),
		Vendor:    protocol.VendorOpenAI,
	}
}

// Calls extracts the tool calls of an assistant message.
func Calls(msg openai.ChatCompletionMessage) []*protocol.Call {
	calls := make([]*protocol.Call, 0, len(msg.ToolCalls))
	for _, tc := range msg.ToolCalls {
		calls = append(calls, Call(tc))
	}
	return calls
}

// ToolMessage renders a tool result as the tool message sent back to the model.
func ToolMessage(res *protocol.Result) (openai.ChatCompletionMessageParamUnion, error) {
	content, err := json.Marshal(res.Content)
	if err != nil {
		return openai.ChatCompletionMessageParamUnion{}, fmt.Errorf("openai: encode result of %s: %w", res.Name, err)
	}
	return openai.ChatCompletionMessageParamUnion{
		OfTool: &openai.ChatCompletionToolMessageParam{
			Content: openai.ChatCompletionToolMessageParamContentUnion{
				OfString: openai.String(string(content)),
			},
			ToolCallID: res.ID,
		},
	}, nil
}
