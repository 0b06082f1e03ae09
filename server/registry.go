package server

import (
	"context"
	"fmt"
	"sync"
)

// Handler executes one tool invocation with already-validated arguments.
type Handler func(ctx context.Context, args map[string]any) (any, error)

// ToolDefinition binds a tool name to its schema and handler.
type ToolDefinition struct {
	Name        string
	Description string
	InputSchema InputSchema
	Handler     Handler
}

// Registry stores the tool catalog. It is populated once at startup and
// read-only while serving; List returns tools in registration order.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]ToolDefinition
	order []string
}

// NewRegistry creates an empty tool registry
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]ToolDefinition),
	}
}

// Register adds a tool definition. Returns an error if the name is taken
// or the definition is incomplete. Called only during startup.
func (r *Registry) Register(def ToolDefinition) error {
	if def.Name == "" {
		return fmt.Errorf("tool name is required")
	}
	if def.Description == "" {
		return fmt.Errorf("tool %q must have a description", def.Name)
	}
	if def.Handler == nil {
		return fmt.Errorf("tool %q must have a handler", def.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[def.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTool, def.Name)
	}

	r.tools[def.Name] = def
	r.order = append(r.order, def.Name)
	return nil
}

// Get returns a tool definition by name
func (r *Registry) Get(name string) (ToolDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, exists := r.tools[name]
	if !exists {
		return ToolDefinition{}, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	return def, nil
}

// List returns all tool definitions in registration order
func (r *Registry) List() []ToolDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.tools[name])
	}
	return defs
}

// Len returns the number of registered tools
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}
