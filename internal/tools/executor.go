// ABOUTME: Tool executor: permission gate, input validation, timed execution
// ABOUTME: Tool failures become error results; nothing propagates to the caller

package tools

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sahilm/fuzzy"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/mauromedda/pi-agent-core/internal/log"
	"github.com/mauromedda/pi-agent-core/internal/metrics"
	"github.com/mauromedda/pi-agent-core/internal/types"
)

// PermissionFunc decides whether a requested call may run. A nil func or a
// false return is always a denial, never an error.
type PermissionFunc func(req types.ToolCallRequest) bool

// DisplayFunc is notified just before a tool runs, for UI surfaces.
type DisplayFunc func(req types.ToolCallRequest)

// Executor runs one requested tool call end to end.
type Executor struct {
	registry   *Registry
	collector  *metrics.Collector
	permission PermissionFunc
	display    DisplayFunc
	dryRun     bool

	mu      sync.Mutex
	schemas map[string]*jsonschema.Schema
}

// NewExecutor builds an executor over a registry. The metrics collector may
// be nil when metrics are not wanted.
func NewExecutor(registry *Registry, collector *metrics.Collector) *Executor {
	return &Executor{
		registry:  registry,
		collector: collector,
		schemas:   make(map[string]*jsonschema.Schema),
	}
}

// SetPermissionFunc installs the injected permission callback.
func (e *Executor) SetPermissionFunc(fn PermissionFunc) { e.permission = fn }

// SetDisplayFunc installs the "tool about to run" callback.
func (e *Executor) SetDisplayFunc(fn DisplayFunc) { e.display = fn }

// SetDryRun toggles dry-run mode: tools are looked up and displayed but
// never invoked.
func (e *Executor) SetDryRun(on bool) { e.dryRun = on }

// Execute runs one requested tool call and always returns a result, never
// an error: lookup misses, denials, validation failures, and tool defects
// all surface as ToolResult values.
func (e *Executor) Execute(ctx context.Context, req types.ToolCallRequest) types.ToolResult {
	if e.registry == nil {
		return types.Fail("no tool registry configured")
	}

	tool := e.registry.Get(req.Name)
	if tool == nil {
		return types.Fail(unknownToolMessage(req.Name, e.registry.Names()))
	}

	if e.display != nil {
		e.display(req)
	}

	if e.dryRun {
		return types.OK(fmt.Sprintf("[dry-run] tool %q not executed", req.Name))
	}

	if tool.RequiresPermission {
		if e.permission == nil || !e.permission(req) {
			return types.Fail(fmt.Sprintf("permission denied for tool %q", req.Name))
		}
	}

	warnings, err := e.validate(tool, req.Input)
	if err != nil {
		return types.Fail(fmt.Sprintf("tool %q: %v", req.Name, err))
	}

	start := time.Now()
	output, execErr := invoke(ctx, tool, req.Input)
	elapsed := time.Since(start)

	if e.collector != nil {
		e.collector.Record(req.Name, execErr == nil, elapsed)
	}

	if execErr != nil {
		log.Debug("tool %q failed after %v: %v", req.Name, elapsed, execErr)
		return types.Fail(execErr.Error())
	}

	return types.OK(warningBanner(warnings) + output)
}

// invoke runs the tool, converting a panic into an error so a misbehaving
// tool cannot take down the executor.
func invoke(ctx context.Context, tool *types.AgentTool, input map[string]any) (output string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tool panicked: %v", r)
		}
	}()
	return tool.Execute(ctx, input)
}

// validate compiles the tool's schema on first use and checks the input.
func (e *Executor) validate(tool *types.AgentTool, input map[string]any) ([]string, error) {
	e.mu.Lock()
	schema, compiled := e.schemas[tool.Name]
	e.mu.Unlock()

	if !compiled {
		var err error
		schema, err = compileSchema(tool.Name, tool.Parameters)
		if err != nil {
			return nil, err
		}
		e.mu.Lock()
		e.schemas[tool.Name] = schema
		e.mu.Unlock()
	}

	return validateInput(schema, tool.Parameters, input)
}

// warningBanner renders soft validation warnings as a prefix block.
func warningBanner(warnings []string) string {
	if len(warnings) == 0 {
		return ""
	}
	return "WARNING: " + strings.Join(warnings, "; ") + "\n"
}

// unknownToolMessage builds the lookup-miss error, with a fuzzy "did you
// mean" suggestion when a near-miss name exists.
func unknownToolMessage(name string, known []string) string {
	matches := fuzzy.Find(name, known)
	if len(matches) > 0 {
		return fmt.Sprintf("unknown tool: %s (did you mean %q?)", name, matches[0].Str)
	}
	return fmt.Sprintf("unknown tool: %s", name)
}
