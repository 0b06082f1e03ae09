package server

import (
	"errors"

	"github.com/spo0nman/databricks-mcp-server/databricks"
)

// ErrorKind is the machine-distinguishable failure category carried across
// the protocol boundary.
type ErrorKind string

const (
	KindTransport        ErrorKind = "transport_error"
	KindRemoteAPI        ErrorKind = "remote_api_error"
	KindUnknownTool      ErrorKind = "unknown_tool"
	KindInvalidArguments ErrorKind = "invalid_arguments"
	KindInternal         ErrorKind = "internal_error"
)

var (
	// ErrUnknownTool is returned when a tool name is not in the registry.
	ErrUnknownTool = errors.New("unknown tool")
	// ErrInvalidArguments is returned when arguments violate a tool's schema.
	ErrInvalidArguments = errors.New("invalid arguments")
	// ErrDuplicateTool is returned when a name is registered twice.
	ErrDuplicateTool = errors.New("tool already registered")
)

// InvocationResult is the outcome of a single tool invocation: either a
// successful payload or a classified failure, never both.
type InvocationResult struct {
	OK      bool
	Payload any
	Kind    ErrorKind
	Message string
}

func succeed(payload any) InvocationResult {
	return InvocationResult{OK: true, Payload: payload}
}

func fail(kind ErrorKind, message string) InvocationResult {
	return InvocationResult{Kind: kind, Message: message}
}

// classify maps an error from the registry, validation, or a handler onto
// its ErrorKind. Anything unrecognized is an internal error.
func classify(err error) ErrorKind {
	var terr *databricks.TransportError
	if errors.As(err, &terr) {
		return KindTransport
	}
	var aerr *databricks.APIError
	if errors.As(err, &aerr) {
		return KindRemoteAPI
	}
	switch {
	case errors.Is(err, ErrUnknownTool):
		return KindUnknownTool
	case errors.Is(err, ErrInvalidArguments):
		return KindInvalidArguments
	default:
		return KindInternal
	}
}
