// ABOUTME: Tests for hook context derived views and event capabilities
// ABOUTME: Views must be fresh per call and omit absent optional fields

package hooks

import (
	"testing"
)

func TestContext_EnvVars(t *testing.T) {
	t.Parallel()

	hctx := &Context{
		Event:     PreToolUse,
		SessionID: "s-42",
		Cwd:       "/work",
		Tool:      "bash",
		ToolInput: map[string]any{"command": "ls"},
	}

	env := hctx.EnvVars()
	want := map[string]string{
		"PI_EVENT":      "PreToolUse",
		"PI_SESSION_ID": "s-42",
		"PI_CWD":        "/work",
		"PI_TOOL_NAME":  "bash",
		"PI_TOOL_INPUT": `{"command":"ls"}`,
	}
	for k, v := range want {
		if env[k] != v {
			t.Errorf("env[%s] = %q, want %q", k, env[k], v)
		}
	}
	if _, ok := env["PI_MESSAGE"]; ok {
		t.Error("absent message should not produce PI_MESSAGE")
	}
}

func TestContext_ViewsAreFresh(t *testing.T) {
	t.Parallel()

	hctx := &Context{Event: PreToolUse, Tool: "bash"}

	first := hctx.AsMap()
	first["tool"] = "tampered"

	if second := hctx.AsMap(); second["tool"] != "bash" {
		t.Error("AsMap must rebuild the view per call")
	}
}

func TestEventCapabilities(t *testing.T) {
	t.Parallel()

	tests := []struct {
		event     Event
		canBlock  bool
		canModify bool
	}{
		{PreToolUse, true, true},
		{PostToolUse, true, true},
		{UserPromptSubmit, true, true},
		{ContextBuild, false, true},
		{Stop, true, false},
		{SessionStart, false, false},
		{SessionEnd, false, false},
	}

	for _, tt := range tests {
		if got := tt.event.CanBlock(); got != tt.canBlock {
			t.Errorf("%s.CanBlock() = %v, want %v", tt.event, got, tt.canBlock)
		}
		if got := tt.event.CanModify(); got != tt.canModify {
			t.Errorf("%s.CanModify() = %v, want %v", tt.event, got, tt.canModify)
		}
	}

	if Event("Bogus").Known() {
		t.Error("unknown event should not be Known")
	}
}

func TestDefinition_TimeoutDefaults(t *testing.T) {
	t.Parallel()

	d := Definition{Name: "d", Type: TypeCommand, Command: "true", Enabled: true}
	if err := d.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if d.Timeout.Seconds != DefaultTimeoutSeconds {
		t.Errorf("Timeout.Seconds = %d, want default %d", d.Timeout.Seconds, DefaultTimeoutSeconds)
	}
	if d.Timeout.OnTimeout != TimeoutContinue {
		t.Errorf("OnTimeout = %q, want continue default", d.Timeout.OnTimeout)
	}

	d.Timeout = Timeout{Seconds: -1, OnTimeout: TimeoutBlock}
	if err := d.Validate(); err == nil {
		t.Error("negative timeout should fail validation")
	}
}
