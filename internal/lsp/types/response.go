package types

import (
	"encoding/json"
	"fmt"
)

// ResponseMessage represents a generic LSP response message
type ResponseMessage struct {
	// The jsonrpc version. Must be "2.0"
	JSONRPC string `json:"jsonrpc"`

	// The request id
	ID json.RawMessage `json:"id"`

	// The result of the request
	Result json.RawMessage `json:"result,omitempty"`

	// The error object in case a request fails
	Error *ResponseError `json:"error,omitempty"`
}

// ResponseError represents an error in an LSP response
type ResponseError struct {
	// A number indicating the error type
	Code ErrorCode `json:"code"`

	// A string providing a short description of the error
	Message string `json:"message"`

	// Additional information about the error. Can be omitted.
	Data any `json:"data,omitempty"`
}

// Error implements the error interface.
func (e *ResponseError) Error() string {
	return fmt.Sprintf("LSP error %d: %s", e.Code, e.Message)
}

// ErrorCode represents the error codes specified in the LSP
type ErrorCode int

const (
	// ParseError is used when the server receives an invalid JSON
	ParseError ErrorCode = -32700

	// InvalidRequest is used when the JSON sent is not a valid Request object
	InvalidRequest ErrorCode = -32600

	// MethodNotFound should be returned by the handler when the method is not implemented
	MethodNotFound ErrorCode = -32601

	// InvalidParams should be returned by the handler when the method's params are invalid
	InvalidParams ErrorCode = -32602

	// InternalError is used for any other error related to the method's execution
	InternalError ErrorCode = -32603

	// ServerNotInitialized is used when a request is made before the server is initialized
	ServerNotInitialized ErrorCode = -32002

	// RequestCancelled is used when a request is cancelled by the client
	RequestCancelled ErrorCode = -32800
)

// NewResponse creates a new ResponseMessage
func NewResponse(id json.RawMessage, result any, respErr *ResponseError) (*ResponseMessage, error) {
	var resultJSON json.RawMessage
	switch {
	case respErr != nil:
	case result == nil:
		resultJSON = json.RawMessage("null")
	default:
		var err error
		resultJSON, err = json.Marshal(result)
		if err != nil {
			return nil, err
		}
	}

	return &ResponseMessage{
		JSONRPC: "2.0",
		ID:      id,
		Result:  resultJSON,
		Error:   respErr,
	}, nil
}

// IsNull reports whether the response carries no result.
func (r *ResponseMessage) IsNull() bool {
	return len(r.Result) == 0 || string(r.Result) == "null"
}

// GetResult unmarshals the result into the provided interface
func (r *ResponseMessage) GetResult(v any) error {
	return json.Unmarshal(r.Result, v)
}
