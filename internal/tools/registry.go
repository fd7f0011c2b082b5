// ABOUTME: Tool registry: creates, stores, and queries agent tools
// ABOUTME: Injects the sandbox config into file and shell tools at build time

package tools

import (
	"github.com/mauromedda/pi-agent-core/internal/sandbox"
	"github.com/mauromedda/pi-agent-core/internal/types"
)

// Registry manages the collection of available agent tools.
type Registry struct {
	tools   map[string]*types.AgentTool
	sandbox *sandbox.Config
}

// NewRegistry creates a Registry with sandbox-aware builtin tools. The
// sandbox config may be nil, in which case path validation and command
// isolation are skipped (tests, explicit opt-out).
func NewRegistry(sb *sandbox.Config) *Registry {
	r := &Registry{
		tools:   make(map[string]*types.AgentTool),
		sandbox: sb,
	}
	r.registerBuiltins()
	return r
}

// Register adds a tool, replacing any existing tool with the same name.
func (r *Registry) Register(tool *types.AgentTool) {
	r.tools[tool.Name] = tool
}

// Get returns a tool by name, or nil if not found.
func (r *Registry) Get(name string) *types.AgentTool {
	return r.tools[name]
}

// Names returns the names of all registered tools.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.tools))
	for name := range r.tools {
		out = append(out, name)
	}
	return out
}

// All returns every registered tool as a slice.
func (r *Registry) All() []*types.AgentTool {
	out := make([]*types.AgentTool, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t)
	}
	return out
}

// ReadOnly returns only tools whose ReadOnly flag is true.
func (r *Registry) ReadOnly() []*types.AgentTool {
	var out []*types.AgentTool
	for _, t := range r.tools {
		if t.ReadOnly {
			out = append(out, t)
		}
	}
	return out
}

// registerBuiltins adds the built-in tool set.
func (r *Registry) registerBuiltins() {
	builtins := []*types.AgentTool{
		newBashTool(r.sandbox),
		newReadTool(r.sandbox),
		newWriteTool(r.sandbox),
		newLsTool(r.sandbox),
	}
	for _, t := range builtins {
		r.Register(t)
	}
}
