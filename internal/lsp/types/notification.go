package types

import (
	"encoding/json"
)

// NotificationMessage represents a generic LSP notification message
type NotificationMessage struct {
	// The jsonrpc version. Must be "2.0"
	JSONRPC string `json:"jsonrpc"`

	// The method to be invoked
	Method string `json:"method"`

	// The notification's params
	Params json.RawMessage `json:"params,omitempty"`
}

// NewNotification creates a new NotificationMessage
func NewNotification(method string, params any) (*NotificationMessage, error) {
	var paramsJSON json.RawMessage
	if params != nil {
		var err error
		paramsJSON, err = json.Marshal(params)
		if err != nil {
			return nil, err
		}
	}

	return &NotificationMessage{
		JSONRPC: "2.0",
		Method:  method,
		Params:  paramsJSON,
	}, nil
}

// GetParams unmarshals the params into the provided interface
func (n *NotificationMessage) GetParams(v any) error {
	return json.Unmarshal(n.Params, v)
}

// Notifications sent from client to server
const (
	Initialized         = "initialized"
	Exit                = "exit"
	DidOpenTextDocument = "textDocument/didOpen"
)

// Notifications sent from server to client
const (
	ShowMessage        = "window/showMessage"
	LogMessage         = "window/logMessage"
	PublishDiagnostics = "textDocument/publishDiagnostics"
	Progress           = "$/progress"
	LanguageStatus     = "language/status"
)

// LogMessageParams is the payload of window/logMessage and window/showMessage.
type LogMessageParams struct {
	Type    int    `json:"type"`
	Message string `json:"message"`
}
