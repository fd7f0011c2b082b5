// ABOUTME: Strict YAML schema for hook configuration
// ABOUTME: Unknown fields are a load-time error; file merging stays external

package config

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/mauromedda/pi-agent-core/internal/hooks"
)

// HooksConfig is the typed form of a merged hooks configuration document.
type HooksConfig struct {
	Hooks map[hooks.Event][]hooks.Definition
}

// rawHooksConfig mirrors the YAML document shape before validation.
type rawHooksConfig struct {
	Hooks map[string][]rawDefinition `yaml:"hooks"`
}

// rawDefinition exists so enabled can default to true when absent.
type rawDefinition struct {
	Name    string         `yaml:"name"`
	Type    string         `yaml:"type"`
	Match   map[string]any `yaml:"match"`
	Command string         `yaml:"command"`
	Script  string         `yaml:"script"`
	Prompt  string         `yaml:"prompt"`
	Model   string         `yaml:"model"`
	Message string         `yaml:"message"`
	Timeout hooks.Timeout  `yaml:"timeout"`
	Enabled *bool          `yaml:"enabled"`
}

// ParseHooksConfig decodes a hooks configuration document strictly and
// validates every definition. Hooks keep their document order within each
// event; names must be unique within an event's list.
func ParseHooksConfig(data []byte) (*HooksConfig, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var raw rawHooksConfig
	if err := dec.Decode(&raw); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parsing hooks config: %w", err)
	}

	cfg := &HooksConfig{Hooks: make(map[hooks.Event][]hooks.Definition, len(raw.Hooks))}
	for eventName, defs := range raw.Hooks {
		event := hooks.Event(eventName)
		if !event.Known() {
			return nil, fmt.Errorf("unknown hook event %q", eventName)
		}

		seen := make(map[string]bool, len(defs))
		out := make([]hooks.Definition, 0, len(defs))
		for _, rd := range defs {
			def := hooks.Definition{
				Name:    rd.Name,
				Type:    hooks.HookType(rd.Type),
				Match:   rd.Match,
				Command: rd.Command,
				Script:  rd.Script,
				Prompt:  rd.Prompt,
				Model:   rd.Model,
				Message: rd.Message,
				Timeout: rd.Timeout,
				Enabled: rd.Enabled == nil || *rd.Enabled,
			}
			if err := def.Validate(); err != nil {
				return nil, fmt.Errorf("event %s: %w", eventName, err)
			}
			if seen[def.Name] {
				return nil, fmt.Errorf("event %s: duplicate hook name %q", eventName, def.Name)
			}
			seen[def.Name] = true
			out = append(out, def)
		}
		cfg.Hooks[event] = out
	}

	return cfg, nil
}
