// ABOUTME: Matching helpers for permission rules: tool patterns and specifiers
// ABOUTME: Handles trailing-* prefixes, /** path patterns, and filepath.Match globs

package permission

import (
	"path/filepath"
	"strings"
)

// matchRule checks if a rule matches a tool name and specifier.
func matchRule(rule Rule, toolName, specifier string) bool {
	if !matchToolPattern(rule.Tool, toolName) {
		return false
	}

	// A rule without a specifier matches every call to the tool.
	if rule.Specifier == "" {
		return true
	}
	if specifier == "" {
		return false
	}

	// Trailing " *": prefix match on the command ("rm *" matches "rm -rf /").
	if strings.HasSuffix(rule.Specifier, " *") {
		prefix := rule.Specifier[:len(rule.Specifier)-2]
		if strings.HasPrefix(specifier, prefix) {
			return true
		}
	}

	// Trailing "*" without a space: "npm*" matches "npm run test".
	if strings.HasSuffix(rule.Specifier, "*") {
		prefix := rule.Specifier[:len(rule.Specifier)-1]
		if strings.HasPrefix(specifier, prefix) {
			return true
		}
	}

	// Path pattern: "/**" suffix matches the directory and everything under it.
	if strings.HasSuffix(rule.Specifier, "/**") {
		prefix := rule.Specifier[:len(rule.Specifier)-3]
		if specifier == prefix || strings.HasPrefix(specifier, prefix+"/") {
			return true
		}
	}

	if matched, _ := filepath.Match(rule.Specifier, specifier); matched {
		return true
	}

	return rule.Specifier == specifier
}

// matchToolPattern matches a tool name against a pattern.
func matchToolPattern(pattern, name string) bool {
	if pattern == "*" {
		return true
	}
	if strings.HasSuffix(pattern, "*") {
		return strings.HasPrefix(name, pattern[:len(pattern)-1])
	}
	return strings.EqualFold(pattern, name)
}

// extractSpecifier extracts the rule-relevant argument from tool input.
func extractSpecifier(toolName string, input map[string]any) string {
	switch strings.ToLower(toolName) {
	case "bash":
		if cmd, ok := input["command"].(string); ok {
			return cmd
		}
	case "write", "read":
		if path, ok := input["file_path"].(string); ok {
			return path
		}
	case "ls":
		if path, ok := input["path"].(string); ok {
			return path
		}
	}
	return ""
}
