package types

import (
	"encoding/json"
)

// InitializeParams represents the parameters of an initialize request.
type InitializeParams struct {
	ProcessID             *int               `json:"processId"`
	ClientInfo            *ClientInfo        `json:"clientInfo,omitempty"`
	RootURI               string             `json:"rootUri"`
	InitializationOptions json.RawMessage    `json:"initializationOptions,omitempty"`
	Capabilities          ClientCapabilities `json:"capabilities"`
	WorkspaceFolders      []WorkspaceFolder  `json:"workspaceFolders,omitempty"`
}

// ClientInfo represents information about the client.
type ClientInfo struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// InitializeResult represents the result of an initialize request.
type InitializeResult struct {
	Capabilities ServerCapabilities `json:"capabilities"`
	ServerInfo   *ServerInfo        `json:"serverInfo,omitempty"`
}

// ServerInfo represents information about the server.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// WorkspaceFolder represents a workspace folder in the client.
type WorkspaceFolder struct {
	// The associated URI for this workspace folder.
	URI string `json:"uri"`

	// The name of the workspace folder.
	Name string `json:"name"`
}

// ClientCapabilities lists the parts of the protocol this client uses. Only
// the capabilities the resolver relies on are declared.
type ClientCapabilities struct {
	TextDocument *TextDocumentClientCapabilities `json:"textDocument,omitempty"`
	Workspace    *WorkspaceClientCapabilities    `json:"workspace,omitempty"`
}

// TextDocumentClientCapabilities define capabilities the editor / tool provides on text documents.
type TextDocumentClientCapabilities struct {
	Hover          *HoverClientCapabilities          `json:"hover,omitempty"`
	Definition     *DefinitionClientCapabilities     `json:"definition,omitempty"`
	DocumentSymbol *DocumentSymbolClientCapabilities `json:"documentSymbol,omitempty"`
}

type HoverClientCapabilities struct {
	ContentFormat []MarkupKind `json:"contentFormat,omitempty"`
}

type DefinitionClientCapabilities struct {
	LinkSupport bool `json:"linkSupport,omitempty"`
}

type DocumentSymbolClientCapabilities struct {
	HierarchicalDocumentSymbolSupport bool `json:"hierarchicalDocumentSymbolSupport,omitempty"`
}

// WorkspaceClientCapabilities define capabilities the editor / tool provides on the workspace.
type WorkspaceClientCapabilities struct {
	ExecuteCommand   *struct{} `json:"executeCommand,omitempty"`
	WorkspaceFolders bool      `json:"workspaceFolders,omitempty"`
	Configuration    bool      `json:"configuration,omitempty"`
}

// ServerCapabilities keeps the raw capability values the resolver inspects.
// Providers may be a bool or an options object, so they stay as raw JSON.
type ServerCapabilities struct {
	HoverProvider          json.RawMessage        `json:"hoverProvider,omitempty"`
	DefinitionProvider     json.RawMessage        `json:"definitionProvider,omitempty"`
	DocumentSymbolProvider json.RawMessage        `json:"documentSymbolProvider,omitempty"`
	ExecuteCommandProvider *ExecuteCommandOptions `json:"executeCommandProvider,omitempty"`
}

// ExecuteCommandOptions lists the commands a server can execute.
type ExecuteCommandOptions struct {
	Commands []string `json:"commands,omitempty"`
}

// Supports reports whether a provider value is present and not false.
func Supports(provider json.RawMessage) bool {
	return len(provider) > 0 && string(provider) != "false" && string(provider) != "null"
}

// DefaultClientCapabilities returns the capabilities sent on initialize.
func DefaultClientCapabilities() ClientCapabilities {
	return ClientCapabilities{
		TextDocument: &TextDocumentClientCapabilities{
			Hover:          &HoverClientCapabilities{ContentFormat: []MarkupKind{Markdown, PlainText}},
			Definition:     &DefinitionClientCapabilities{LinkSupport: true},
			DocumentSymbol: &DocumentSymbolClientCapabilities{HierarchicalDocumentSymbolSupport: true},
		},
		Workspace: &WorkspaceClientCapabilities{
			ExecuteCommand:   &struct{}{},
			WorkspaceFolders: true,
			Configuration:    true,
		},
	}
}
