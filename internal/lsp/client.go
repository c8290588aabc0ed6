package lsp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spachava753/arthas-copy/internal/lsp/types"
)

// ErrClientClosed is returned for requests issued after the connection ended.
var ErrClientClosed = errors.New("language server connection closed")

// NotificationHandler handles a server-to-client notification.
type NotificationHandler func(*types.NotificationMessage)

// RequestHandler answers a server-to-client request.
type RequestHandler func(params json.RawMessage) (any, error)

// Client is a JSON-RPC client speaking the LSP base protocol over any
// byte stream: a child process' stdio or a TCP connection.
type Client struct {
	conn   io.ReadWriteCloser
	reader *bufio.Reader

	writerMu sync.Mutex
	nextID   atomic.Int64

	requests   map[string]chan *types.ResponseMessage
	requestsMu sync.Mutex

	notifyHandlers  map[string]NotificationHandler
	requestHandlers map[string]RequestHandler
	handlerMu       sync.RWMutex

	timeout time.Duration
	logger  *slog.Logger

	done      chan struct{}
	closeOnce sync.Once
	errMu     sync.Mutex
	readErr   error
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithRequestTimeout bounds every request. Zero means requests wait until
// their context is done.
func WithRequestTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.timeout = d }
}

// WithLogger sets the logger used for protocol tracing.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

// NewClient starts reading from conn and returns a ready client.
func NewClient(conn io.ReadWriteCloser, opts ...ClientOption) *Client {
	c := &Client{
		conn:            conn,
		reader:          bufio.NewReader(conn),
		requests:        make(map[string]chan *types.ResponseMessage),
		notifyHandlers:  make(map[string]NotificationHandler),
		requestHandlers: make(map[string]RequestHandler),
		logger:          slog.Default(),
		done:            make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	go c.processMessages()

	return c
}

func (c *Client) processMessages() {
	for {
		msg, err := types.ReadMessage(c.reader)
		if err != nil {
			select {
			case <-c.done:
				c.shutdown(ErrClientClosed)
				return
			default:
			}
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				c.shutdown(ErrClientClosed)
				return
			}
			c.logger.Debug("language server stream broke", "error", err)
			c.shutdown(fmt.Errorf("reading message: %w", err))
			return
		}
		c.handleMessage(msg)
	}
}

func (c *Client) handleMessage(msg *types.Message) {
	var env types.Envelope
	if err := json.Unmarshal(msg.Content, &env); err != nil {
		c.logger.Debug("error unmarshaling message header", "error", err)
		return
	}

	switch {
	case env.IsResponse():
		var response types.ResponseMessage
		if err := json.Unmarshal(msg.Content, &response); err != nil {
			c.logger.Debug("error unmarshaling response", "error", err)
			return
		}
		c.handleResponse(&response)
	case env.IsRequest():
		var request types.RequestMessage
		if err := json.Unmarshal(msg.Content, &request); err != nil {
			c.logger.Debug("error unmarshaling server request", "error", err)
			return
		}
		go c.handleRequest(&request)
	case env.Method != "":
		var notification types.NotificationMessage
		if err := json.Unmarshal(msg.Content, &notification); err != nil {
			c.logger.Debug("error unmarshaling notification", "error", err)
			return
		}
		c.handleNotification(&notification)
	}
}

func idKey(id json.RawMessage) string {
	return string(bytes.TrimSpace(id))
}

func (c *Client) handleResponse(response *types.ResponseMessage) {
	c.requestsMu.Lock()
	defer c.requestsMu.Unlock()

	ch, ok := c.requests[idKey(response.ID)]
	if !ok {
		c.logger.Debug("no pending request for response", "id", string(response.ID))
		return
	}

	select {
	case ch <- response:
	default:
		c.logger.Debug("dropping duplicate response", "id", string(response.ID))
	}
}

func (c *Client) handleNotification(notification *types.NotificationMessage) {
	c.handlerMu.RLock()
	handler, ok := c.notifyHandlers[notification.Method]
	c.handlerMu.RUnlock()

	if ok {
		handler(notification)
		return
	}
	c.logger.Debug("unhandled notification", "method", notification.Method)
}

func (c *Client) handleRequest(request *types.RequestMessage) {
	c.handlerMu.RLock()
	handler, ok := c.requestHandlers[request.Method]
	c.handlerMu.RUnlock()

	var (
		result  any
		respErr *types.ResponseError
	)
	if ok {
		res, err := handler(request.Params)
		if err != nil {
			respErr = &types.ResponseError{Code: types.InternalError, Message: err.Error()}
		} else {
			result = res
		}
	} else {
		// Servers block on some of their own requests, so anything unknown
		// gets an empty answer instead of silence.
		c.logger.Debug("answering unknown server request with null", "method", request.Method)
	}

	response, err := types.NewResponse(request.ID, result, respErr)
	if err != nil {
		c.logger.Debug("failed to build response", "method", request.Method, "error", err)
		return
	}
	if err := c.write(response); err != nil {
		c.logger.Debug("failed to answer server request", "method", request.Method, "error", err)
	}
}

// RegisterNotificationHandler installs a handler for a notification method.
func (c *Client) RegisterNotificationHandler(method string, handler NotificationHandler) {
	c.handlerMu.Lock()
	defer c.handlerMu.Unlock()
	c.notifyHandlers[method] = handler
}

// RegisterRequestHandler installs a handler for a server-to-client request.
func (c *Client) RegisterRequestHandler(method string, handler RequestHandler) {
	c.handlerMu.Lock()
	defer c.handlerMu.Unlock()
	c.requestHandlers[method] = handler
}

// Call sends a request and decodes its result into result, which may be nil.
func (c *Client) Call(ctx context.Context, method string, params, result any) error {
	resp, err := c.SendRequest(ctx, method, params)
	if err != nil {
		return err
	}
	if resp.Error != nil {
		return resp.Error
	}
	if result == nil || resp.IsNull() {
		return nil
	}
	if err := resp.GetResult(result); err != nil {
		return fmt.Errorf("decoding %s result: %w", method, err)
	}
	return nil
}

// SendRequest sends a request and waits for the matching response.
func (c *Client) SendRequest(ctx context.Context, method string, params any) (*types.ResponseMessage, error) {
	id := c.nextID.Add(1)
	request, err := types.NewRequest(id, method, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	key := strconv.FormatInt(id, 10)
	responseChan := make(chan *types.ResponseMessage, 1)
	c.requestsMu.Lock()
	c.requests[key] = responseChan
	c.requestsMu.Unlock()

	defer func() {
		c.requestsMu.Lock()
		delete(c.requests, key)
		c.requestsMu.Unlock()
	}()

	if err := c.write(request); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	c.logger.Debug("lsp request sent", "id", id, "method", method)

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	select {
	case response := <-responseChan:
		return response, nil
	case <-ctx.Done():
		_ = c.Notify("$/cancelRequest", map[string]int64{"id": id})
		return nil, fmt.Errorf("%s: %w", method, ctx.Err())
	case <-c.done:
		return nil, fmt.Errorf("%s: %w", method, c.err())
	}
}

// Notify sends a notification.
func (c *Client) Notify(method string, params any) error {
	notification, err := types.NewNotification(method, params)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return c.write(notification)
}

func (c *Client) write(message any) error {
	select {
	case <-c.done:
		return ErrClientClosed
	default:
	}

	c.writerMu.Lock()
	defer c.writerMu.Unlock()
	return types.WriteMessage(c.conn, message)
}

func (c *Client) shutdown(err error) {
	c.closeOnce.Do(func() {
		c.errMu.Lock()
		c.readErr = err
		c.errMu.Unlock()
		close(c.done)
	})
}

func (c *Client) err() error {
	c.errMu.Lock()
	defer c.errMu.Unlock()
	if c.readErr == nil {
		return ErrClientClosed
	}
	return c.readErr
}

// Done is closed once the connection stops delivering messages.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	c.shutdown(ErrClientClosed)
	return c.conn.Close()
}
