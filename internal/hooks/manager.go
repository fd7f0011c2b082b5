// ABOUTME: Hook manager: finds matching hooks for an event and folds results
// ABOUTME: Sequential dispatch, first-block/first-skip wins, visible modifications

package hooks

import (
	"context"
	"fmt"
	"sync"

	"github.com/mauromedda/pi-agent-core/internal/llm"
	"github.com/mauromedda/pi-agent-core/internal/log"
)

// Manager dispatches lifecycle events to configured hooks. Definitions are
// read-only after construction; one executor per hook type is instantiated
// lazily and cached.
type Manager struct {
	hooks       map[Event][]Definition
	projectRoot string
	provider    llm.Provider

	mu        sync.Mutex
	executors map[HookType]executor
}

// NewManager validates every definition and builds a manager. The provider
// may be nil when no prompt hooks are configured; a prompt hook without a
// provider fails at dispatch time as an execution defect.
func NewManager(hooks map[Event][]Definition, projectRoot string, provider llm.Provider) (*Manager, error) {
	for event, defs := range hooks {
		if !event.Known() {
			return nil, fmt.Errorf("unknown hook event %q", event)
		}
		for i := range defs {
			if err := defs[i].Validate(); err != nil {
				return nil, fmt.Errorf("event %s: %w", event, err)
			}
		}
	}
	return &Manager{
		hooks:       hooks,
		projectRoot: projectRoot,
		provider:    provider,
		executors:   make(map[HookType]executor),
	}, nil
}

// Dispatch runs all enabled hooks registered for event, in configured order.
//
// A Block from a hook ends the dispatch if the event allows blocking,
// otherwise it is logged and ignored. A Skip always ends the dispatch.
// Continue results have their modifications folded into the returned
// accumulator and made visible to later hooks in the same dispatch.
// Execution defects are logged and treated as Continue for that hook.
func (m *Manager) Dispatch(ctx context.Context, event Event, hctx *Context) Result {
	defs := m.hooks[event]
	if len(defs) == 0 {
		return Continue()
	}

	// Work on a copy so modifications stay local to this dispatch; the
	// caller applies them from the returned result.
	work := *hctx
	snapshot := work.AsMap()
	accumulated := Continue()

	for i := range defs {
		def := defs[i]
		if !def.Enabled {
			continue
		}
		if !Matches(def.Match, snapshot) {
			continue
		}

		res, err := m.runHook(ctx, def, &work)
		if err != nil {
			// A crashed hook never vetoes by default.
			log.Warn("hook %q on %s failed, continuing: %v", def.Name, event, err)
			continue
		}

		switch res.Action {
		case ActionBlock:
			if event.CanBlock() {
				return res
			}
			log.Warn("hook %q returned block on non-blockable event %s, ignoring", def.Name, event)
		case ActionSkip:
			return res
		default:
			if event.CanModify() {
				accumulated.merge(res)
				applyModifications(&work, res)
				snapshot = work.AsMap()
			}
		}
	}

	return accumulated
}

// runHook resolves the executor for the hook's type and runs it under the
// shared timeout wrapper.
func (m *Manager) runHook(ctx context.Context, def Definition, hctx *Context) (Result, error) {
	ex, err := m.executorFor(def.Type)
	if err != nil {
		return Result{}, err
	}
	return runWithTimeout(ctx, ex, def, hctx)
}

// executorFor returns the cached executor for a hook type, creating it on
// first use.
func (m *Manager) executorFor(t HookType) (executor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ex, ok := m.executors[t]; ok {
		return ex, nil
	}

	var ex executor
	switch t {
	case TypeCommand:
		ex = commandExecutor{}
	case TypeScript:
		ex = scriptExecutor{projectRoot: m.projectRoot}
	case TypePrompt:
		ex = promptExecutor{provider: m.provider}
	default:
		return nil, fmt.Errorf("no executor for hook type %q", t)
	}

	m.executors[t] = ex
	return ex, nil
}

// applyModifications rewrites the working context so later hooks in the same
// dispatch observe earlier modifications.
func applyModifications(hctx *Context, res Result) {
	if res.ModifiedInput != nil {
		hctx.ToolInput = res.ModifiedInput
	}
	if res.ModifiedOutput != nil {
		hctx.ToolResult = res.ModifiedOutput
	}
	if res.ModifiedMessage != "" {
		hctx.Message = res.ModifiedMessage
	}
	if res.ModifiedResponse != "" {
		hctx.Response = res.ModifiedResponse
	}
}
