// ABOUTME: Hook lifecycle events with per-event block/modify capabilities
// ABOUTME: Capabilities are fixed at definition time, never configurable

package hooks

// Event identifies a lifecycle point in the agent loop.
type Event string

const (
	PreToolUse       Event = "PreToolUse"
	PostToolUse      Event = "PostToolUse"
	UserPromptSubmit Event = "UserPromptSubmit"
	ContextBuild     Event = "ContextBuild"
	Stop             Event = "Stop"
	SessionStart     Event = "SessionStart"
	SessionEnd       Event = "SessionEnd"
)

// capability describes what hooks firing on an event may do.
type capability struct {
	block  bool
	modify bool
}

var eventCapabilities = map[Event]capability{
	PreToolUse:       {block: true, modify: true},
	PostToolUse:      {block: true, modify: true},
	UserPromptSubmit: {block: true, modify: true},
	ContextBuild:     {block: false, modify: true},
	Stop:             {block: true, modify: false},
	SessionStart:     {block: false, modify: false},
	SessionEnd:       {block: false, modify: false},
}

// Known reports whether e is a recognized lifecycle event.
func (e Event) Known() bool {
	_, ok := eventCapabilities[e]
	return ok
}

// CanBlock reports whether hooks may veto this event.
func (e Event) CanBlock() bool {
	return eventCapabilities[e].block
}

// CanModify reports whether hooks may rewrite payloads for this event.
func (e Event) CanModify() bool {
	return eventCapabilities[e].modify
}
