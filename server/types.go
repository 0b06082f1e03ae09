package server

// Tool is the discovery view of a registered tool: name, description, and
// input schema. Handler internals are never exposed here.
type Tool struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	InputSchema InputSchema `json:"inputSchema"`
}

// ToolsCallParams is the params for a tools/call request
type ToolsCallParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

// ToolsCallResult is the result for a tools/call response
type ToolsCallResult struct {
	Content []Content `json:"content"`
	IsError bool      `json:"isError,omitempty"`
}

// Content represents a content block in a tool result
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}
