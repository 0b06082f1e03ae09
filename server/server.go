package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/spo0nman/databricks-mcp-server/databricks"
)

const protocolVersion = "2024-11-05"

// Server implements the MCP stdio server around the tool dispatcher.
type Server struct {
	transport  *Transport
	dispatcher *Dispatcher
	name       string
	version    string
	logger     zerolog.Logger
}

// NewServer creates the MCP server with the full Databricks tool catalog
// backed by api.
func NewServer(name, version string, api databricks.API, logger zerolog.Logger) (*Server, error) {
	registry, err := NewCatalog(api)
	if err != nil {
		return nil, fmt.Errorf("build tool catalog: %w", err)
	}
	return &Server{
		transport:  NewTransport(logger),
		dispatcher: NewDispatcher(registry, logger),
		name:       name,
		version:    version,
		logger:     logger,
	}, nil
}

// Run reads messages until the client disconnects. A failed invocation
// produces an error response; it never terminates the loop.
func (s *Server) Run() error {
	s.logger.Info().Str("name", s.name).Str("version", s.version).Msg("server starting")

	for {
		msg, err := s.transport.ReadMessage()
		if err != nil {
			return err
		}

		if err := s.handleMessage(msg); err != nil {
			s.logger.Error().Err(err).Str("method", msg.Method).Msg("failed to handle message")
			_ = s.transport.WriteError(msg.ID, -32603, err.Error(), nil)
		}
	}
}

func (s *Server) handleMessage(msg *JSONRPCMessage) error {
	switch msg.Method {
	case "initialize":
		return s.handleInitialize(msg)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(msg)
	case "tools/call":
		return s.handleToolsCall(msg)
	default:
		if msg.ID != nil {
			return s.transport.WriteError(msg.ID, -32601, fmt.Sprintf("Method not found: %s", msg.Method), nil)
		}
		// Notifications without ID don't get responses
		return nil
	}
}

// --- Initialize ---

type InitializeParams struct {
	ProtocolVersion string         `json:"protocolVersion"`
	Capabilities    map[string]any `json:"capabilities"`
	ClientInfo      ClientInfo     `json:"clientInfo"`
}

type ClientInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type InitializeResult struct {
	ProtocolVersion string       `json:"protocolVersion"`
	Capabilities    Capabilities `json:"capabilities"`
	ServerInfo      ServerInfo   `json:"serverInfo"`
}

type Capabilities struct {
	Tools map[string]any `json:"tools,omitempty"`
}

type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

func (s *Server) handleInitialize(msg *JSONRPCMessage) error {
	var params InitializeParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return fmt.Errorf("invalid initialize params: %w", err)
		}
	}

	s.logger.Info().Str("client", params.ClientInfo.Name).Str("client_version", params.ClientInfo.Version).Msg("client connected")

	result := InitializeResult{
		ProtocolVersion: protocolVersion,
		Capabilities: Capabilities{
			Tools: map[string]any{"listChanged": false},
		},
		ServerInfo: ServerInfo{
			Name:    s.name,
			Version: s.version,
		},
	}
	return s.transport.WriteResponse(msg.ID, result)
}

// --- Tools ---

func (s *Server) handleToolsList(msg *JSONRPCMessage) error {
	result := struct {
		Tools []Tool `json:"tools"`
	}{Tools: s.dispatcher.ListTools()}

	return s.transport.WriteResponse(msg.ID, result)
}

func (s *Server) handleToolsCall(msg *JSONRPCMessage) error {
	var params ToolsCallParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return fmt.Errorf("invalid tools/call params: %w", err)
	}

	result := s.dispatcher.CallTool(context.Background(), params.Name, params.Arguments)
	return s.writeResult(msg.ID, result)
}

// writeResult converts an InvocationResult into the protocol's tool-result
// envelope: JSON payload text on success, a kind+message object on failure.
func (s *Server) writeResult(id any, result InvocationResult) error {
	if result.OK {
		data, err := json.Marshal(result.Payload)
		if err != nil {
			return fmt.Errorf("failed to marshal tool payload: %w", err)
		}
		return s.transport.WriteResponse(id, ToolsCallResult{
			Content: []Content{{Type: "text", Text: string(data)}},
		})
	}

	data, err := json.Marshal(map[string]string{
		"error_kind": string(result.Kind),
		"message":    result.Message,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal tool error: %w", err)
	}
	return s.transport.WriteResponse(id, ToolsCallResult{
		Content: []Content{{Type: "text", Text: string(data)}},
		IsError: true,
	})
}
