package lsp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	jsonpatch "github.com/evanphx/json-patch/v5"

	"github.com/spachava753/arthas-copy/internal/lsp/types"
	"github.com/spachava753/arthas-copy/internal/version"
)

// methodClassFileContents returns the decompiled or attached source of a
// jdt:// class file URI.
const methodClassFileContents = "java/classFileContents"

// ErrUnsupported is returned for queries the connected server cannot answer.
var ErrUnsupported = errors.New("operation not supported by language server")

// SessionOptions configures the initialize handshake.
type SessionOptions struct {
	// RootDir is the workspace root sent as rootUri.
	RootDir string
	// InitializationOptions is passed through verbatim.
	InitializationOptions json.RawMessage
	// InitPatch is a list of RFC 6902 operations applied to the marshaled
	// initialize params before they are sent.
	InitPatch []map[string]any
	Logger    *slog.Logger
}

// Session is an initialized conversation with a language server.
type Session struct {
	client       *Client
	capabilities types.ServerCapabilities
	serverInfo   *types.ServerInfo
	logger       *slog.Logger

	mu     sync.Mutex
	opened map[string]string
}

// NewSession performs the initialize/initialized handshake over client.
func NewSession(ctx context.Context, client *Client, opts SessionOptions) (*Session, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Session{
		client: client,
		logger: logger,
		opened: make(map[string]string),
	}
	s.registerServerRequests()

	params, err := buildInitializeParams(opts)
	if err != nil {
		return nil, err
	}

	var result types.InitializeResult
	if err := client.Call(ctx, types.MethodInitialize, params, &result); err != nil {
		return nil, fmt.Errorf("initialize: %w", err)
	}
	s.capabilities = result.Capabilities
	s.serverInfo = result.ServerInfo

	if err := client.Notify(types.Initialized, struct{}{}); err != nil {
		return nil, fmt.Errorf("initialized: %w", err)
	}

	if s.serverInfo != nil {
		logger.Debug("language server initialized", "name", s.serverInfo.Name, "version", s.serverInfo.Version)
	}
	return s, nil
}

func buildInitializeParams(opts SessionOptions) (json.RawMessage, error) {
	pid := os.Getpid()
	params := types.InitializeParams{
		ProcessID: &pid,
		ClientInfo: &types.ClientInfo{
			Name:    "arthas-copy",
			Version: version.Get(),
		},
		InitializationOptions: opts.InitializationOptions,
		Capabilities:          types.DefaultClientCapabilities(),
	}
	if opts.RootDir != "" {
		root, err := filepath.Abs(opts.RootDir)
		if err != nil {
			return nil, fmt.Errorf("resolving workspace root: %w", err)
		}
		params.RootURI = types.URIFromPath(root)
		params.WorkspaceFolders = []types.WorkspaceFolder{{URI: params.RootURI, Name: filepath.Base(root)}}
	}

	raw, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("marshaling initialize params: %w", err)
	}
	if len(opts.InitPatch) == 0 {
		return raw, nil
	}

	patchJSON, err := json.Marshal(opts.InitPatch)
	if err != nil {
		return nil, fmt.Errorf("marshaling initialize patch: %w", err)
	}
	patch, err := jsonpatch.DecodePatch(patchJSON)
	if err != nil {
		return nil, fmt.Errorf("decoding initialize patch: %w", err)
	}
	patched, err := patch.Apply(raw)
	if err != nil {
		return nil, fmt.Errorf("applying initialize patch: %w", err)
	}
	return patched, nil
}

func (s *Session) registerServerRequests() {
	s.client.RegisterRequestHandler(types.WorkspaceConfiguration, func(params json.RawMessage) (any, error) {
		var req struct {
			Items []json.RawMessage `json:"items"`
		}
		if err := json.Unmarshal(params, &req); err != nil {
			return nil, err
		}
		return make([]any, len(req.Items)), nil
	})
	s.client.RegisterRequestHandler(types.RegisterCapability, func(json.RawMessage) (any, error) { return nil, nil })
	s.client.RegisterRequestHandler(types.WorkDoneProgressCreate, func(json.RawMessage) (any, error) { return nil, nil })

	s.client.RegisterNotificationHandler(types.LogMessage, func(n *types.NotificationMessage) {
		var p types.LogMessageParams
		if err := n.GetParams(&p); err == nil {
			s.logger.Debug("language server log", "message", p.Message)
		}
	})
	for _, method := range []string{types.PublishDiagnostics, types.Progress, types.LanguageStatus, types.ShowMessage} {
		s.client.RegisterNotificationHandler(method, func(*types.NotificationMessage) {})
	}
}

// Capabilities returns what the server announced on initialize.
func (s *Session) Capabilities() types.ServerCapabilities {
	return s.capabilities
}

// Open sends textDocument/didOpen for uri unless it is already open.
func (s *Session) Open(uri, languageID, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.opened[uri]; ok {
		return nil
	}
	params := types.DidOpenTextDocumentParams{
		TextDocument: types.NewTextDocumentItem(uri, languageID, 1, text),
	}
	if err := s.client.Notify(types.DidOpenTextDocument, params); err != nil {
		return fmt.Errorf("didOpen %s: %w", uri, err)
	}
	s.opened[uri] = text
	return nil
}

// OpenDocument returns the text of uri, opening it on the server if needed.
// file:// documents are read from disk, jdt:// class files are fetched from
// the server.
func (s *Session) OpenDocument(ctx context.Context, uri string) (string, error) {
	s.mu.Lock()
	text, ok := s.opened[uri]
	s.mu.Unlock()
	if ok {
		return text, nil
	}

	if strings.HasPrefix(uri, "jdt://") {
		var contents string
		if err := s.client.Call(ctx, methodClassFileContents, types.TextDocumentIdentifier{URI: uri}, &contents); err != nil {
			return "", fmt.Errorf("fetching class file %s: %w", uri, err)
		}
		s.mu.Lock()
		s.opened[uri] = contents
		s.mu.Unlock()
		return contents, nil
	}

	data, err := os.ReadFile(types.PathFromURI(uri))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", uri, err)
	}
	text = string(data)
	languageID := "plaintext"
	if strings.EqualFold(filepath.Ext(types.PathFromURI(uri)), ".java") {
		languageID = "java"
	}
	if err := s.Open(uri, languageID, text); err != nil {
		return "", err
	}
	return text, nil
}

// Definition returns the definition locations for the symbol at pos. Both
// Location and LocationLink results are normalized to Location.
func (s *Session) Definition(ctx context.Context, uri string, pos types.Position) ([]types.Location, error) {
	if !types.Supports(s.capabilities.DefinitionProvider) {
		return nil, ErrUnsupported
	}
	var raw json.RawMessage
	if err := s.client.Call(ctx, types.MethodDefinition, types.NewTextDocumentPositionParams(uri, pos), &raw); err != nil {
		return nil, err
	}
	return decodeLocations(raw)
}

func decodeLocations(raw json.RawMessage) ([]types.Location, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}
	if strings.HasPrefix(trimmed, "{") {
		var loc types.Location
		if err := json.Unmarshal(raw, &loc); err != nil {
			return nil, fmt.Errorf("decoding location: %w", err)
		}
		return []types.Location{loc}, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decoding locations: %w", err)
	}
	locations := make([]types.Location, 0, len(items))
	for _, item := range items {
		var probe struct {
			TargetURI string `json:"targetUri"`
		}
		if err := json.Unmarshal(item, &probe); err != nil {
			return nil, fmt.Errorf("decoding location: %w", err)
		}
		if probe.TargetURI != "" {
			var link types.LocationLink
			if err := json.Unmarshal(item, &link); err != nil {
				return nil, fmt.Errorf("decoding location link: %w", err)
			}
			locations = append(locations, types.NewLocation(link.TargetURI, link.TargetSelectionRange))
			continue
		}
		var loc types.Location
		if err := json.Unmarshal(item, &loc); err != nil {
			return nil, fmt.Errorf("decoding location: %w", err)
		}
		locations = append(locations, loc)
	}
	return locations, nil
}

// Hover returns hover information at pos, or nil when the server has none.
func (s *Session) Hover(ctx context.Context, uri string, pos types.Position) (*types.Hover, error) {
	if !types.Supports(s.capabilities.HoverProvider) {
		return nil, ErrUnsupported
	}
	var hover *types.Hover
	if err := s.client.Call(ctx, types.MethodHover, types.NewTextDocumentPositionParams(uri, pos), &hover); err != nil {
		return nil, err
	}
	return hover, nil
}

// DocumentSymbols returns the symbol tree of uri. Flat SymbolInformation
// results are converted to childless nodes.
func (s *Session) DocumentSymbols(ctx context.Context, uri string) ([]types.DocumentSymbol, error) {
	if !types.Supports(s.capabilities.DocumentSymbolProvider) {
		return nil, ErrUnsupported
	}
	params := types.DocumentSymbolParams{TextDocument: types.TextDocumentIdentifier{URI: uri}}
	var raw []json.RawMessage
	if err := s.client.Call(ctx, types.MethodDocumentSymbol, params, &raw); err != nil {
		return nil, err
	}

	out := make([]types.DocumentSymbol, 0, len(raw))
	for _, item := range raw {
		var probe struct {
			Location *types.Location `json:"location"`
		}
		if err := json.Unmarshal(item, &probe); err != nil {
			return nil, fmt.Errorf("decoding symbol: %w", err)
		}
		if probe.Location != nil {
			var info types.SymbolInformation
			if err := json.Unmarshal(item, &info); err != nil {
				return nil, fmt.Errorf("decoding symbol information: %w", err)
			}
			out = append(out, info.AsDocumentSymbol())
			continue
		}
		var sym types.DocumentSymbol
		if err := json.Unmarshal(item, &sym); err != nil {
			return nil, fmt.Errorf("decoding document symbol: %w", err)
		}
		out = append(out, sym)
	}
	return out, nil
}

// ExecuteCommand runs workspace/executeCommand and returns the raw result.
func (s *Session) ExecuteCommand(ctx context.Context, command string, args ...any) (json.RawMessage, error) {
	var raw json.RawMessage
	params := types.ExecuteCommandParams{Command: command, Arguments: args}
	if err := s.client.Call(ctx, types.MethodExecuteCommand, params, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// TypeHierarchy asks JDT LS to resolve the type hierarchy at pos. The
// server answers with a single item or a list depending on its version.
func (s *Session) TypeHierarchy(ctx context.Context, uri string, pos types.Position) ([]types.TypeHierarchyEntry, error) {
	raw, err := s.ExecuteCommand(ctx, types.JavaWorkspaceCommand,
		types.JavaResolveTypeHierarchy, uri, pos.Line, pos.Character)
	if err != nil {
		return nil, err
	}
	trimmed := strings.TrimSpace(string(raw))
	switch {
	case trimmed == "" || trimmed == "null":
		return nil, nil
	case strings.HasPrefix(trimmed, "{"):
		var entry types.TypeHierarchyEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			return nil, fmt.Errorf("decoding type hierarchy: %w", err)
		}
		return []types.TypeHierarchyEntry{entry}, nil
	default:
		var entries []types.TypeHierarchyEntry
		if err := json.Unmarshal(raw, &entries); err != nil {
			return nil, fmt.Errorf("decoding type hierarchy: %w", err)
		}
		return entries, nil
	}
}

// Close runs shutdown and exit, then closes the connection.
func (s *Session) Close(ctx context.Context) error {
	err := s.client.Call(ctx, types.MethodShutdown, nil, nil)
	if err != nil {
		s.logger.Debug("shutdown request failed", "error", err)
	}
	if nerr := s.client.Notify(types.Exit, nil); nerr != nil {
		s.logger.Debug("exit notification failed", "error", nerr)
	}
	return errors.Join(err, s.client.Close())
}
