// ABOUTME: Hook definition: one configured rule bound to a lifecycle event
// ABOUTME: Validation rejects payload/type mismatches and bad timeout values

package hooks

import (
	"fmt"
)

// HookType selects the execution strategy for a hook.
type HookType string

const (
	TypeCommand HookType = "command"
	TypeScript  HookType = "script"
	TypePrompt  HookType = "prompt"
)

// OnTimeout selects how a timed-out hook resolves.
type OnTimeout string

const (
	TimeoutBlock    OnTimeout = "block"
	TimeoutContinue OnTimeout = "continue"
)

// DefaultTimeoutSeconds bounds hook execution when no timeout is configured.
const DefaultTimeoutSeconds = 10

// Timeout bounds one hook execution.
type Timeout struct {
	Seconds   int       `yaml:"seconds" json:"seconds"`
	OnTimeout OnTimeout `yaml:"on_timeout" json:"on_timeout"`
}

// Definition is one configured hook. Exactly one payload field (Command,
// Script, or Prompt) must be set, matching Type.
type Definition struct {
	Name    string         `yaml:"name" json:"name"`
	Type    HookType       `yaml:"type" json:"type"`
	Match   map[string]any `yaml:"match,omitempty" json:"match,omitempty"`
	Command string         `yaml:"command,omitempty" json:"command,omitempty"`
	Script  string         `yaml:"script,omitempty" json:"script,omitempty"`
	Prompt  string         `yaml:"prompt,omitempty" json:"prompt,omitempty"`
	Model   string         `yaml:"model,omitempty" json:"model,omitempty"`
	Message string         `yaml:"message,omitempty" json:"message,omitempty"`
	Timeout Timeout        `yaml:"timeout,omitempty" json:"timeout,omitempty"`
	Enabled bool           `yaml:"enabled" json:"enabled"`
}

// Validate checks the definition invariants. Zero timeout fields are
// filled with defaults first so hand-built definitions stay terse.
func (d *Definition) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("hook definition missing name")
	}
	if d.Timeout.Seconds == 0 {
		d.Timeout.Seconds = DefaultTimeoutSeconds
	}
	if d.Timeout.OnTimeout == "" {
		d.Timeout.OnTimeout = TimeoutContinue
	}
	if d.Timeout.Seconds < 0 {
		return fmt.Errorf("hook %q: timeout.seconds must be positive, got %d", d.Name, d.Timeout.Seconds)
	}
	if d.Timeout.OnTimeout != TimeoutBlock && d.Timeout.OnTimeout != TimeoutContinue {
		return fmt.Errorf("hook %q: timeout.on_timeout must be %q or %q, got %q",
			d.Name, TimeoutBlock, TimeoutContinue, d.Timeout.OnTimeout)
	}

	var want string
	switch d.Type {
	case TypeCommand:
		want = d.Command
	case TypeScript:
		want = d.Script
	case TypePrompt:
		want = d.Prompt
	default:
		return fmt.Errorf("hook %q: unknown hook type %q", d.Name, d.Type)
	}
	if want == "" {
		return fmt.Errorf("hook %q: type %s requires a %s payload", d.Name, d.Type, d.Type)
	}
	if set := payloadCount(d); set != 1 {
		return fmt.Errorf("hook %q: exactly one payload field must be set, got %d", d.Name, set)
	}
	return nil
}

// payloadCount returns how many payload fields are populated.
func payloadCount(d *Definition) int {
	n := 0
	for _, p := range []string{d.Command, d.Script, d.Prompt} {
		if p != "" {
			n++
		}
	}
	return n
}
