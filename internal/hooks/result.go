// ABOUTME: Hook result type: the decision a hook returns to the dispatcher
// ABOUTME: Block and skip are terminal; modifications are additive

package hooks

// Action is a hook's decision for the in-flight dispatch.
type Action string

const (
	ActionContinue Action = "continue"
	ActionBlock    Action = "block"
	ActionSkip     Action = "skip"
)

// Result is the outcome of running one hook, and also the folded outcome of
// a whole dispatch. Modification fields are only honored when the firing
// event's CanModify is true; Block is only honored when CanBlock is true.
type Result struct {
	Action              Action         `json:"action"`
	Message             string         `json:"message,omitempty"`
	ModifiedInput       map[string]any `json:"modified_input,omitempty"`
	ModifiedOutput      map[string]any `json:"modified_output,omitempty"`
	ModifiedMessage     string         `json:"modified_message,omitempty"`
	ModifiedResponse    string         `json:"modified_response,omitempty"`
	InjectSystemMessage string         `json:"inject_system_message,omitempty"`
}

// Continue builds a plain continue result.
func Continue() Result {
	return Result{Action: ActionContinue}
}

// Block builds a block result with the given reason.
func Block(message string) Result {
	return Result{Action: ActionBlock, Message: message}
}

// Skip builds a skip result with the given reason.
func Skip(message string) Result {
	return Result{Action: ActionSkip, Message: message}
}

// merge folds a continue result's modifications into the accumulator.
// Per field: the new value wins if present, else the accumulated one stays.
func (r *Result) merge(next Result) {
	if next.ModifiedInput != nil {
		r.ModifiedInput = next.ModifiedInput
	}
	if next.ModifiedOutput != nil {
		r.ModifiedOutput = next.ModifiedOutput
	}
	if next.ModifiedMessage != "" {
		r.ModifiedMessage = next.ModifiedMessage
	}
	if next.ModifiedResponse != "" {
		r.ModifiedResponse = next.ModifiedResponse
	}
	if next.InjectSystemMessage != "" {
		r.InjectSystemMessage = next.InjectSystemMessage
	}
}
