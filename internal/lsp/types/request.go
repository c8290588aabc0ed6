package types

import (
	"encoding/json"
	"fmt"
)

// RequestMessage represents a generic LSP request message
type RequestMessage struct {
	// The jsonrpc version. Must be "2.0"
	JSONRPC string `json:"jsonrpc"`

	// The request id
	ID json.RawMessage `json:"id"`

	// The method to be invoked
	Method string `json:"method"`

	// The method's params
	Params json.RawMessage `json:"params,omitempty"`
}

// NewRequest creates a new RequestMessage
func NewRequest(id int64, method string, params any) (RequestMessage, error) {
	var paramsJSON json.RawMessage
	if params != nil {
		var err error
		paramsJSON, err = json.Marshal(params)
		if err != nil {
			return RequestMessage{}, fmt.Errorf("failed to marshal params: %w", err)
		}
	}

	return RequestMessage{
		JSONRPC: "2.0",
		ID:      json.RawMessage(fmt.Sprintf("%d", id)),
		Method:  method,
		Params:  paramsJSON,
	}, nil
}

// GetParams unmarshals the params into the provided interface
func (r *RequestMessage) GetParams(v any) error {
	return json.Unmarshal(r.Params, v)
}

// Requests sent from client to server
const (
	MethodInitialize     = "initialize"
	MethodShutdown       = "shutdown"
	MethodDefinition     = "textDocument/definition"
	MethodHover          = "textDocument/hover"
	MethodDocumentSymbol = "textDocument/documentSymbol"
	MethodExecuteCommand = "workspace/executeCommand"
)

// Requests sent from server to client that must be answered
const (
	WorkspaceConfiguration = "workspace/configuration"
	RegisterCapability     = "client/registerCapability"
	WorkDoneProgressCreate = "window/workDoneProgress/create"
	WorkspaceFolders       = "workspace/workspaceFolders"
)
