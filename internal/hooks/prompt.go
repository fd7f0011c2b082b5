// ABOUTME: Prompt hook executor: asks an LLM to judge the in-flight action
// ABOUTME: Fail-open by design; only a clear verdict in the reply can block

package hooks

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/mauromedda/pi-agent-core/internal/llm"
)

// promptExecutor renders a prompt template and extracts a decision from the
// model's free-form reply.
type promptExecutor struct {
	provider llm.Provider
}

var placeholderPattern = regexp.MustCompile(`\{\{\s*([\w.]+)\s*\}\}`)

func (p promptExecutor) run(ctx context.Context, def Definition, hctx *Context) (Result, error) {
	if p.provider == nil {
		return Result{}, fmt.Errorf("hook %q: no LLM provider configured for prompt hooks", def.Name)
	}

	prompt := renderTemplate(def.Prompt, hctx.AsMap())
	reply, err := p.provider.Complete(ctx, prompt, def.Model)
	if err != nil {
		return Result{}, fmt.Errorf("hook %q: prompt completion: %w", def.Name, err)
	}

	return decodeDecision(reply), nil
}

// renderTemplate substitutes {{field}} and {{a.b}} placeholders from the
// nested context map. Missing paths render empty.
func renderTemplate(tmpl string, ctx map[string]any) string {
	return placeholderPattern.ReplaceAllStringFunc(tmpl, func(match string) string {
		field := placeholderPattern.FindStringSubmatch(match)[1]
		value, ok := lookupPath(ctx, field)
		if !ok || value == nil {
			return ""
		}
		if s, isStr := value.(string); isStr {
			return s
		}
		return marshalCompact(value)
	})
}

// decodeDecision extracts a verdict from a free-form model reply. Prompt
// hooks are advisory judgment, not enforcement: no JSON, malformed JSON, or
// an unrecognized shape all continue.
func decodeDecision(reply string) Result {
	obj := extractJSONObject(reply)
	if obj == "" {
		return Continue()
	}

	var probe map[string]any
	if err := json.Unmarshal([]byte(obj), &probe); err != nil {
		return Continue()
	}

	if _, hasAction := probe["action"]; hasAction {
		var res Result
		if err := json.Unmarshal([]byte(obj), &res); err != nil {
			return Continue()
		}
		switch Action(strings.ToLower(string(res.Action))) {
		case ActionBlock, ActionSkip, ActionContinue:
			res.Action = Action(strings.ToLower(string(res.Action)))
			return res
		}
		return Continue()
	}

	if safe, ok := probe["safe"].(bool); ok {
		if safe {
			return Continue()
		}
		reason, _ := probe["reason"].(string)
		if reason == "" {
			reason = "action judged unsafe"
		}
		return Block(reason)
	}

	return Continue()
}

// extractJSONObject returns the first balanced {...} object in s, tracking
// string literals so braces inside quotes do not confuse the scan.
func extractJSONObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
