package server

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Dispatcher bridges the protocol's list/call operations to the registry
// and handler execution. It is safe for concurrent use: the registry and
// client context are read-only while serving.
type Dispatcher struct {
	registry *Registry
	logger   zerolog.Logger
}

// NewDispatcher creates a Dispatcher over a populated registry.
func NewDispatcher(registry *Registry, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{registry: registry, logger: logger}
}

// ListTools returns the discovery view of every registered tool, in
// registration order. An empty registry yields an empty slice.
func (d *Dispatcher) ListTools() []Tool {
	defs := d.registry.List()
	tools := make([]Tool, 0, len(defs))
	for _, def := range defs {
		tools = append(tools, Tool{
			Name:        def.Name,
			Description: def.Description,
			InputSchema: def.InputSchema,
		})
	}
	return tools
}

// CallTool resolves a tool by name, validates arguments against its schema,
// and invokes the handler. Every failure path terminates in a structured
// InvocationResult; no error escapes this boundary. Argument values are
// never logged since they may contain secrets.
func (d *Dispatcher) CallTool(ctx context.Context, name string, args map[string]any) InvocationResult {
	id := uuid.NewString()
	start := time.Now()

	result := d.callTool(ctx, name, args)

	if result.OK {
		d.logger.Info().
			Str("tool", name).
			Str("invocation_id", id).
			Dur("elapsed", time.Since(start)).
			Msg("tool invocation succeeded")
	} else {
		d.logger.Warn().
			Str("tool", name).
			Str("invocation_id", id).
			Dur("elapsed", time.Since(start)).
			Str("error_kind", string(result.Kind)).
			Msg("tool invocation failed")
	}

	return result
}

func (d *Dispatcher) callTool(ctx context.Context, name string, args map[string]any) InvocationResult {
	def, err := d.registry.Get(name)
	if err != nil {
		return fail(KindUnknownTool, err.Error())
	}

	if args == nil {
		args = map[string]any{}
	}
	validated, err := def.InputSchema.Validate(args)
	if err != nil {
		return fail(KindInvalidArguments, err.Error())
	}

	payload, err := invoke(ctx, def.Handler, validated)
	if err != nil {
		return fail(classify(err), err.Error())
	}
	return succeed(payload)
}

// invoke runs a handler, converting a panic into an error so a single bad
// invocation can never take the process down.
func invoke(ctx context.Context, h Handler, args map[string]any) (payload any, err error) {
	defer func() {
		if r := recover(); r != nil {
			payload = nil
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return h(ctx, args)
}
