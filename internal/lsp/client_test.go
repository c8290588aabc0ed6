package lsp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spachava753/arthas-copy/internal/lsp/types"
)

func TestClientCall(t *testing.T) {
	server, conn := newFakeServer(t)
	server.result("echo/upper", map[string]string{"text": "HELLO"})
	server.handle("echo/fail", func(json.RawMessage) (any, *types.ResponseError) {
		return nil, &types.ResponseError{Code: types.InternalError, Message: "boom"}
	})

	client := NewClient(conn)
	t.Cleanup(func() { client.Close() })

	t.Run("decodes result", func(t *testing.T) {
		var got map[string]string
		require.NoError(t, client.Call(context.Background(), "echo/upper", map[string]string{"text": "hello"}, &got))
		assert.Equal(t, "HELLO", got["text"])
	})

	t.Run("surfaces response errors", func(t *testing.T) {
		err := client.Call(context.Background(), "echo/fail", nil, nil)
		var rerr *types.ResponseError
		require.True(t, errors.As(err, &rerr))
		assert.Equal(t, types.InternalError, rerr.Code)
		assert.Contains(t, err.Error(), "boom")
	})

	t.Run("unknown method", func(t *testing.T) {
		err := client.Call(context.Background(), "nope", nil, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "method not found")
	})
}

func TestClientCallHonorsContext(t *testing.T) {
	server, conn := newFakeServer(t)
	block := make(chan struct{})
	t.Cleanup(func() { close(block) })
	server.handle("slow", func(json.RawMessage) (any, *types.ResponseError) {
		<-block
		return nil, nil
	})

	client := NewClient(conn)
	t.Cleanup(func() { client.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := client.Call(ctx, "slow", nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClientRequestTimeout(t *testing.T) {
	server, conn := newFakeServer(t)
	block := make(chan struct{})
	t.Cleanup(func() { close(block) })
	server.handle("slow", func(json.RawMessage) (any, *types.ResponseError) {
		<-block
		return nil, nil
	})

	client := NewClient(conn, WithRequestTimeout(20*time.Millisecond))
	t.Cleanup(func() { client.Close() })

	err := client.Call(context.Background(), "slow", nil, nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClientAnswersServerRequests(t *testing.T) {
	server, conn := newFakeServer(t)
	client := NewClient(conn)
	t.Cleanup(func() { client.Close() })

	client.RegisterRequestHandler("custom/ping", func(json.RawMessage) (any, error) {
		return "pong", nil
	})

	tests := []struct {
		name   string
		method string
		want   string
	}{
		{name: "registered handler", method: "custom/ping", want: `"pong"`},
		{name: "unknown request gets null", method: "window/somethingNew", want: `null`},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := int64(100 + i)
			req, err := types.NewRequest(id, tt.method, nil)
			require.NoError(t, err)
			go server.send(req)

			select {
			case raw := <-server.replied:
				var resp types.ResponseMessage
				require.NoError(t, json.Unmarshal(raw, &resp))
				assert.JSONEq(t, tt.want, string(resp.Result))
				assert.Nil(t, resp.Error)
			case <-time.After(2 * time.Second):
				t.Fatal("no reply from client")
			}
		})
	}
}

func TestClientNotificationHandler(t *testing.T) {
	server, conn := newFakeServer(t)
	client := NewClient(conn)
	t.Cleanup(func() { client.Close() })

	got := make(chan string, 1)
	client.RegisterNotificationHandler(types.LogMessage, func(n *types.NotificationMessage) {
		var p types.LogMessageParams
		if err := n.GetParams(&p); err == nil {
			got <- p.Message
		}
	})

	note, err := types.NewNotification(types.LogMessage, types.LogMessageParams{Type: 3, Message: "ready"})
	require.NoError(t, err)
	go server.send(note)

	select {
	case msg := <-got:
		assert.Equal(t, "ready", msg)
	case <-time.After(2 * time.Second):
		t.Fatal("notification not delivered")
	}
}

func TestClientClosedConnection(t *testing.T) {
	server, conn := newFakeServer(t)
	client := NewClient(conn)

	server.conn.Close()
	select {
	case <-client.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("client did not notice closed connection")
	}

	err := client.Call(context.Background(), "anything", nil, nil)
	assert.ErrorIs(t, err, ErrClientClosed)
}
