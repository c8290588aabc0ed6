package lsp

import (
	"bufio"
	"encoding/json"
	"net"
	"sync"
	"testing"

	"github.com/spachava753/arthas-copy/internal/lsp/types"
)

type handlerFunc func(params json.RawMessage) (any, *types.ResponseError)

// fakeServer answers requests on the far end of a net.Pipe.
type fakeServer struct {
	conn net.Conn

	writeMu  sync.Mutex
	mu       sync.Mutex
	handlers map[string]handlerFunc
	notes    []types.NotificationMessage

	notified chan string
	replied  chan json.RawMessage
}

func newFakeServer(t *testing.T) (*fakeServer, net.Conn) {
	t.Helper()
	client, server := net.Pipe()
	s := &fakeServer{
		conn:     server,
		handlers: make(map[string]handlerFunc),
		notified: make(chan string, 64),
		replied:  make(chan json.RawMessage, 8),
	}
	go s.serve()
	t.Cleanup(func() { server.Close() })
	return s, client
}

func (s *fakeServer) handle(method string, h handlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[method] = h
}

func (s *fakeServer) result(method string, v any) {
	s.handle(method, func(json.RawMessage) (any, *types.ResponseError) { return v, nil })
}

func (s *fakeServer) notifications(method string) []types.NotificationMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []types.NotificationMessage
	for _, n := range s.notes {
		if n.Method == method {
			out = append(out, n)
		}
	}
	return out
}

func (s *fakeServer) send(v any) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	// The client may already be gone when a late reply is written.
	_ = types.WriteMessage(s.conn, v)
}

func (s *fakeServer) answer(req types.RequestMessage) {
	s.mu.Lock()
	h, ok := s.handlers[req.Method]
	s.mu.Unlock()
	var (
		result any
		rerr   *types.ResponseError
	)
	if ok {
		result, rerr = h(req.Params)
	} else {
		rerr = &types.ResponseError{Code: types.MethodNotFound, Message: "method not found: " + req.Method}
	}
	resp, _ := types.NewResponse(req.ID, result, rerr)
	s.send(resp)
}

func (s *fakeServer) serve() {
	r := bufio.NewReader(s.conn)
	for {
		msg, err := types.ReadMessage(r)
		if err != nil {
			return
		}
		var env types.Envelope
		if err := json.Unmarshal(msg.Content, &env); err != nil {
			continue
		}
		switch {
		case env.IsResponse():
			s.replied <- msg.Content
		case env.IsRequest():
			var req types.RequestMessage
			_ = json.Unmarshal(msg.Content, &req)
			go s.answer(req)
		default:
			var n types.NotificationMessage
			_ = json.Unmarshal(msg.Content, &n)
			s.mu.Lock()
			s.notes = append(s.notes, n)
			s.mu.Unlock()
			select {
			case s.notified <- n.Method:
			default:
			}
		}
	}
}

// waitNotification blocks until a notification with method arrives.
func (s *fakeServer) waitNotification(t *testing.T, method string) {
	t.Helper()
	for m := range s.notified {
		if m == method {
			return
		}
	}
}

func javaCapabilities() map[string]any {
	return map[string]any{
		"capabilities": map[string]any{
			"hoverProvider":          true,
			"definitionProvider":     true,
			"documentSymbolProvider": true,
			"executeCommandProvider": map[string]any{"commands": []string{types.JavaWorkspaceCommand}},
		},
		"serverInfo": map[string]any{"name": "fake-jdtls", "version": "0.0.1"},
	}
}
