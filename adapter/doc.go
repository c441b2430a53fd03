// Package adapter groups the vendor adapters. Each subpackage renders compiled
// tool schemas in one vendor's wire shape and converts that vendor's function
// call values back into protocol.Call:
//
//   - gemini: google.golang.org/genai declarations
//   - openai: github.com/openai/openai-go tool params
//   - fantasy: charm.land/fantasy function tools
//   - gigachat: GigaChat function descriptions
//   - jsonschema: standalone JSON Schema documents
//   - jsonmap: the plain map form shared by map-based vendors
//
// Adapters are pure functions of a *tool.Schema; none of them re-validates
// what the compiler already checked.
package adapter
