// ABOUTME: Pattern matcher deciding whether a hook applies to a context
// ABOUTME: Dotted-path lookup; regex, glob, exact, boolean, and numeric patterns

package hooks

import (
	"path"
	"regexp"
	"strings"
	"sync"
)

// regexOnlyChars mark a string pattern as a regex. Deliberately excludes
// * and ?, which are glob-only.
const regexOnlyChars = `^$+()|\[]`

// regexCache holds compiled patterns keyed by their source string.
var regexCache sync.Map

// Matches evaluates a set of field->pattern conditions against a nested
// context map. All entries must match (an empty pattern set matches).
// Missing or null target values never match.
func Matches(patterns map[string]any, ctx map[string]any) bool {
	for field, pattern := range patterns {
		value, ok := lookupPath(ctx, field)
		if !ok || value == nil {
			return false
		}
		if !matchValue(pattern, value) {
			return false
		}
	}
	return true
}

// lookupPath walks a dotted path through nested maps. It reports absent the
// instant a non-map is encountered mid-path.
func lookupPath(m map[string]any, dotted string) (any, bool) {
	parts := strings.Split(dotted, ".")
	var cur any = m
	for _, part := range parts {
		node, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = node[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// matchValue dispatches on the pattern's type: booleans by equality,
// numbers numerically, strings via regex/glob/exact.
func matchValue(pattern, value any) bool {
	switch p := pattern.(type) {
	case bool:
		v, ok := value.(bool)
		return ok && v == p
	case string:
		v, ok := value.(string)
		return ok && matchString(p, v)
	default:
		pf, pok := toFloat(pattern)
		vf, vok := toFloat(value)
		return pok && vok && pf == vf
	}
}

// matchString matches three ways in priority order: regex when any
// regex-only character is present, glob when * or ? is present, exact
// equality otherwise. Invalid patterns never match.
func matchString(pattern, value string) bool {
	if strings.ContainsAny(pattern, regexOnlyChars) {
		re, err := compileCached(pattern)
		if err != nil {
			return false
		}
		return re.MatchString(value)
	}
	if strings.ContainsAny(pattern, "*?") {
		ok, err := path.Match(pattern, value)
		return err == nil && ok
	}
	return pattern == value
}

// compileCached returns the compiled regex for pattern, compiling at most
// once per distinct pattern string.
func compileCached(pattern string) (*regexp.Regexp, error) {
	if cached, ok := regexCache.Load(pattern); ok {
		return cached.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	regexCache.Store(pattern, re)
	return re, nil
}

// toFloat widens any numeric type to float64 for comparison.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
