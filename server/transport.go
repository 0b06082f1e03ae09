package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// JSONRPCMessage represents a JSON-RPC 2.0 message
type JSONRPCMessage struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	Result  any             `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

// RPCError represents a JSON-RPC error
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Transport handles line-delimited JSON-RPC over a reader/writer pair.
// stdout carries only protocol traffic; all logging goes elsewhere.
type Transport struct {
	reader *bufio.Reader
	mu     sync.Mutex
	writer io.Writer
	logger zerolog.Logger
}

// NewTransport creates a transport over stdin/stdout
func NewTransport(logger zerolog.Logger) *Transport {
	return newTransport(os.Stdin, os.Stdout, logger)
}

func newTransport(r io.Reader, w io.Writer, logger zerolog.Logger) *Transport {
	return &Transport{
		reader: bufio.NewReader(r),
		writer: w,
		logger: logger,
	}
}

// ReadMessage reads and parses the next JSON-RPC message
func (t *Transport) ReadMessage() (*JSONRPCMessage, error) {
	line, err := t.reader.ReadBytes('\n')
	if err != nil {
		return nil, err
	}

	var msg JSONRPCMessage
	if err := json.Unmarshal(line, &msg); err != nil {
		return nil, fmt.Errorf("failed to parse JSON-RPC message: %w", err)
	}

	t.logger.Debug().Str("method", msg.Method).Any("id", msg.ID).Msg("message received")
	return &msg, nil
}

// WriteMessage writes a JSON-RPC message as one line
func (t *Transport) WriteMessage(msg *JSONRPCMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON-RPC message: %w", err)
	}
	data = append(data, '\n')

	t.mu.Lock()
	defer t.mu.Unlock()
	if _, err := t.writer.Write(data); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return nil
}

// WriteResponse writes a JSON-RPC response
func (t *Transport) WriteResponse(id any, result any) error {
	return t.WriteMessage(&JSONRPCMessage{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	})
}

// WriteError writes a JSON-RPC error response
func (t *Transport) WriteError(id any, code int, message string, data any) error {
	return t.WriteMessage(&JSONRPCMessage{
		JSONRPC: "2.0",
		ID:      id,
		Error: &RPCError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	})
}
