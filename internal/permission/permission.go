// ABOUTME: Rule-based permission checker used as the tool executor's approval callback
// ABOUTME: Supports Bash(npm run *), Write(/src/**) style rules with deny-ask-allow ordering

package permission

import (
	"fmt"
	"strings"

	"github.com/mauromedda/pi-agent-core/internal/types"
)

// Action represents a permission decision.
type Action int

const (
	ActionNone  Action = iota // No matching rule
	ActionAllow               // Explicitly allowed
	ActionDeny                // Explicitly denied
	ActionAsk                 // Requires confirmation
)

// Rule is a permission rule with optional specifier matching.
type Rule struct {
	Tool      string // Tool name or pattern (supports * suffix)
	Specifier string // Optional: "npm run *", "/src/**"
	Action    Action
}

// AskFunc is consulted when a rule resolves to ActionAsk or when no rule
// matches a call at all.
type AskFunc func(tool string, input map[string]any) (bool, error)

// Checker evaluates permission rules for tool calls.
type Checker struct {
	rules []Rule
	askFn AskFunc
}

// NewChecker creates a Checker with the given ask function. A nil askFn
// means unresolved calls are denied.
func NewChecker(askFn AskFunc) *Checker {
	return &Checker{askFn: askFn}
}

// AddRule parses a rule string like "Bash(npm run *)" and appends it with
// the given action.
func (c *Checker) AddRule(s string, action Action) {
	c.rules = append(c.rules, parseRule(s, action))
}

// Check validates whether a tool call may run. Returns nil if allowed and
// an error naming the reason otherwise.
func (c *Checker) Check(tool string, input map[string]any) error {
	specifier := extractSpecifier(tool, input)
	switch evaluateRules(c.rules, tool, specifier) {
	case ActionDeny:
		return fmt.Errorf("tool %q with specifier %q denied by rule", tool, specifier)
	case ActionAllow:
		return nil
	}
	if c.askFn == nil {
		return fmt.Errorf("tool %q denied: no interactive approval available", tool)
	}
	allowed, err := c.askFn(tool, input)
	if err != nil {
		return fmt.Errorf("permission check failed: %w", err)
	}
	if !allowed {
		return fmt.Errorf("tool %q denied by user", tool)
	}
	return nil
}

// Func adapts the checker to the tool executor's callback shape.
func (c *Checker) Func() func(req types.ToolCallRequest) bool {
	return func(req types.ToolCallRequest) bool {
		return c.Check(req.Name, req.Input) == nil
	}
}

// parseRule parses a rule string like "Bash(npm run *)" into a Rule.
func parseRule(s string, action Action) Rule {
	rule := Rule{Action: action}
	if idx := strings.Index(s, "("); idx > 0 && strings.HasSuffix(s, ")") {
		rule.Tool = s[:idx]
		rule.Specifier = s[idx+1 : len(s)-1]
	} else {
		rule.Tool = s
	}
	return rule
}

// evaluateRules evaluates rules in deny-first, ask-second, allow-third order.
func evaluateRules(rules []Rule, toolName, specifier string) Action {
	for _, r := range rules {
		if r.Action == ActionDeny && matchRule(r, toolName, specifier) {
			return ActionDeny
		}
	}
	for _, r := range rules {
		if r.Action == ActionAsk && matchRule(r, toolName, specifier) {
			return ActionAsk
		}
	}
	for _, r := range rules {
		if r.Action == ActionAllow && matchRule(r, toolName, specifier) {
			return ActionAllow
		}
	}
	return ActionNone
}
