package types

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Header represents the header part of an LSP message
type Header struct {
	ContentLength int
	ContentType   string
}

// Message represents a complete LSP message
type Message struct {
	Header  Header
	Content json.RawMessage
}

// ReadMessage reads one framed LSP message. The reader must be shared across
// calls so that bytes buffered past one message are kept for the next.
func ReadMessage(r *bufio.Reader) (*Message, error) {
	header, err := readHeader(r)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to parse header: %w", err)
	}

	content, err := readContent(r, header.ContentLength)
	if err != nil {
		return nil, fmt.Errorf("failed to parse content: %w", err)
	}

	return &Message{
		Header:  *header,
		Content: content,
	}, nil
}

// WriteMessage frames and writes a JSON-RPC payload.
func WriteMessage(w io.Writer, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	header := fmt.Sprintf("Content-Length: %d\r\n\r\n", len(data))
	if n, err := io.WriteString(w, header); err != nil {
		return fmt.Errorf("failed to write header, wrote %d bytes: %w", n, err)
	}
	if n, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write message, wrote %d bytes: %w", n, err)
	}
	return nil
}

func readHeader(r *bufio.Reader) (*Header, error) {
	header := &Header{
		ContentType: "application/vscode-jsonrpc; charset=utf-8", // default value
	}

	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return nil, err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			break // End of header
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("invalid header line: %s", line)
		}

		switch strings.TrimSpace(key) {
		case "Content-Length":
			length, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return nil, fmt.Errorf("invalid Content-Length: %s", value)
			}
			header.ContentLength = length
		case "Content-Type":
			header.ContentType = strings.TrimSpace(value)
		}
	}

	if header.ContentLength == 0 {
		return nil, errors.New("missing Content-Length header")
	}

	return header, nil
}

func readContent(r io.Reader, length int) (json.RawMessage, error) {
	content := make([]byte, length)
	if _, err := io.ReadFull(r, content); err != nil {
		return nil, err
	}

	if !json.Valid(content) {
		return nil, errors.New("invalid JSON content")
	}

	return json.RawMessage(content), nil
}

// Envelope holds the fields used to tell responses, requests and
// notifications apart before decoding the rest.
type Envelope struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
}

// IsResponse reports whether the message carries an id and no method.
func (e Envelope) IsResponse() bool {
	return len(e.ID) > 0 && string(e.ID) != "null" && e.Method == ""
}

// IsRequest reports whether the message is a server-initiated request.
func (e Envelope) IsRequest() bool {
	return len(e.ID) > 0 && string(e.ID) != "null" && e.Method != ""
}
