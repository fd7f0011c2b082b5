// ABOUTME: Hook executor contract and the shared timeout enforcement wrapper
// ABOUTME: Timed-out hooks resolve via their on_timeout policy, never hang

package hooks

import (
	"context"
	"fmt"
	"time"
)

// executor runs exactly one hook definition against a context.
// Implementations must honor ctx cancellation.
type executor interface {
	run(ctx context.Context, def Definition, hctx *Context) (Result, error)
}

// runWithTimeout bounds one executor invocation by the definition's timeout.
// Within the bound the executor's outcome is returned unchanged. Past the
// bound (or on caller cancellation, which is not distinguished) the in-flight
// work is cancelled and the outcome is resolved from on_timeout.
func runWithTimeout(ctx context.Context, ex executor, def Definition, hctx *Context) (Result, error) {
	limit := time.Duration(def.Timeout.Seconds) * time.Second
	cctx, cancel := context.WithTimeout(ctx, limit)
	defer cancel()

	type outcome struct {
		res Result
		err error
	}
	done := make(chan outcome, 1)

	go func() {
		res, err := ex.run(cctx, def, hctx)
		done <- outcome{res, err}
	}()

	select {
	case o := <-done:
		// The executor may have failed because its deadline fired mid-run;
		// that still counts as a timeout, not an execution error.
		if cctx.Err() != nil {
			return resolveTimeout(def), nil
		}
		return o.res, o.err
	case <-cctx.Done():
		return resolveTimeout(def), nil
	}
}

// resolveTimeout maps on_timeout to a terminal result.
func resolveTimeout(def Definition) Result {
	if def.Timeout.OnTimeout == TimeoutBlock {
		return Block(fmt.Sprintf("hook %q timed out after %ds", def.Name, def.Timeout.Seconds))
	}
	return Continue()
}
