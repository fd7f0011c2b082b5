// ABOUTME: Stuck detector: flags repeated calls, repeated errors, idle turns
// ABOUTME: Rolling bounded history across the session; reset on new conversation

package stuck

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/mauromedda/pi-agent-core/internal/types"
)

// Config holds the three independent trigger thresholds.
type Config struct {
	RepeatThreshold      int // identical (tool, input) calls in a row
	ErrorRepeatThreshold int // identical (tool, error) failures in a row
	NoProgressThreshold  int // consecutive assistant turns without a tool use
}

// DefaultConfig returns the thresholds used when none are configured.
func DefaultConfig() Config {
	return Config{
		RepeatThreshold:      3,
		ErrorRepeatThreshold: 3,
		NoProgressThreshold:  5,
	}
}

// State is a point-in-time stuck snapshot; it is never persisted.
type State struct {
	IsStuck    bool
	Reason     string
	Suggestion string
}

// Detector accumulates rolling signals over the action stream. Histories are
// bounded at twice their thresholds.
type Detector struct {
	mu          sync.Mutex
	cfg         Config
	callHashes  []uint64
	errorHashes []uint64
	idleTurns   int
}

// NewDetector builds a detector; zero thresholds get defaults.
func NewDetector(cfg Config) *Detector {
	def := DefaultConfig()
	if cfg.RepeatThreshold <= 0 {
		cfg.RepeatThreshold = def.RepeatThreshold
	}
	if cfg.ErrorRepeatThreshold <= 0 {
		cfg.ErrorRepeatThreshold = def.ErrorRepeatThreshold
	}
	if cfg.NoProgressThreshold <= 0 {
		cfg.NoProgressThreshold = def.NoProgressThreshold
	}
	return &Detector{cfg: cfg}
}

// RecordCall records one (tool, input) pair.
func (d *Detector) RecordCall(tool string, input map[string]any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.callHashes = appendBounded(d.callHashes, hashPair(tool, input), d.cfg.RepeatThreshold*2)
}

// RecordResult records a (tool, error) pair for failed results. Successful
// results never contribute to the error signal.
func (d *Detector) RecordResult(tool string, res types.ToolResult) {
	if res.Success {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.errorHashes = appendBounded(d.errorHashes, hashPair(tool, res.Error), d.cfg.ErrorRepeatThreshold*2)
}

// RecordTurn records one assistant turn. A turn that uses a tool resets the
// no-progress counter immediately.
func (d *Detector) RecordTurn(usedTool bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if usedTool {
		d.idleTurns = 0
		return
	}
	d.idleTurns++
}

// Check evaluates the signals in priority order: repeated calls, repeated
// errors, then no progress. The first triggered signal wins.
func (d *Detector) Check() State {
	d.mu.Lock()
	defer d.mu.Unlock()

	if lastNIdentical(d.callHashes, d.cfg.RepeatThreshold) {
		return State{
			IsStuck: true,
			Reason: fmt.Sprintf("the same tool call was repeated %d times in a row",
				d.cfg.RepeatThreshold),
			Suggestion: "Repeating the identical call will not change the outcome. Re-read the last result and try a different tool or different arguments.",
		}
	}

	if lastNIdentical(d.errorHashes, d.cfg.ErrorRepeatThreshold) {
		return State{
			IsStuck: true,
			Reason: fmt.Sprintf("the same tool error occurred %d times in a row",
				d.cfg.ErrorRepeatThreshold),
			Suggestion: "The same error keeps coming back. Address the error's cause before retrying, or take a different approach.",
		}
	}

	if d.idleTurns >= d.cfg.NoProgressThreshold {
		return State{
			IsStuck: true,
			Reason: fmt.Sprintf("%d consecutive turns passed without any tool use",
				d.idleTurns),
			Suggestion: "No actions are being taken. Use a tool to gather information or make progress instead of replying again.",
		}
	}

	return State{}
}

// Reset clears all three signals.
func (d *Detector) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.callHashes = nil
	d.errorHashes = nil
	d.idleTurns = 0
}

// appendBounded appends h and trims the slice to max entries.
func appendBounded(s []uint64, h uint64, max int) []uint64 {
	s = append(s, h)
	if len(s) > max {
		s = s[len(s)-max:]
	}
	return s
}

// lastNIdentical reports whether the last n entries exist and are identical.
func lastNIdentical(s []uint64, n int) bool {
	if n <= 0 || len(s) < n {
		return false
	}
	last := s[len(s)-1]
	for _, h := range s[len(s)-n:] {
		if h != last {
			return false
		}
	}
	return true
}

// hashPair hashes a tool name with a payload. Maps serialize to canonical
// JSON (encoding/json sorts keys) so equal inputs hash equal.
func hashPair(tool string, payload any) uint64 {
	h := fnv.New64a()
	h.Write([]byte(tool))
	h.Write([]byte{0})
	data, err := json.Marshal(payload)
	if err != nil {
		data = []byte(fmt.Sprintf("%v", payload))
	}
	h.Write(data)
	return h.Sum64()
}
