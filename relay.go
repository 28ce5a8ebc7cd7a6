package walletpay

import (
	"context"
	"sync"

	"github.com/sumup/walletpay/logger"
)

// Submitter forwards an approved wallet token to the payment backend and
// reports whether the backend accepted it. Implementations own transport
// concerns; the relay owns the outcome mapping.
type Submitter interface {
	Submit(ctx context.Context, token *Token) (Outcome, error)
}

// SubmitterFunc lifts bare functions into [Submitter].
type SubmitterFunc func(ctx context.Context, token *Token) (Outcome, error)

// Submit forwards the token using the wrapped function.
func (f SubmitterFunc) Submit(ctx context.Context, token *Token) (Outcome, error) {
	return f(ctx, token)
}

// Relay carries a single attempt's token to the backend. It submits at most
// once, maps every backend answer onto the binary Outcome, and signals the
// Complete callback exactly once. A Relay is attempt-scoped; build a fresh one
// per attempt and do not reuse it.
type Relay struct {
	// Backend receives the token. A nil Backend fails the submission.
	Backend Submitter

	// Complete, when set, observes the final outcome. It is invoked exactly
	// once, after the outcome is recorded.
	Complete func(Outcome)

	// Logger records submission diagnostics. Nil disables logging.
	Logger logger.Logger

	mu        sync.Mutex
	submitted bool
	outcome   Outcome
	completed sync.Once
}

// Relay submits the token and returns the outcome the sheet should display.
// A transport error, an explicit backend decline, and an unreadable response
// all map to OutcomeFailure; only an affirmative backend acceptance maps to
// OutcomeSuccess. There is no retry. Calling Relay again returns the recorded
// outcome without contacting the backend a second time.
func (r *Relay) Relay(ctx context.Context, token *Token) Outcome {
	r.mu.Lock()
	if r.submitted {
		outcome := r.outcome
		r.mu.Unlock()
		return outcome
	}
	outcome := r.submit(ctx, token)
	r.submitted = true
	r.outcome = outcome
	r.mu.Unlock()

	r.completed.Do(func() {
		if r.Complete != nil {
			r.Complete(outcome)
		}
	})
	return outcome
}

func (r *Relay) submit(ctx context.Context, token *Token) Outcome {
	if token == nil {
		r.logError("token submission failed: no token", nil)
		return OutcomeFailure
	}
	if r.Backend == nil {
		r.logError("token submission failed: no backend configured", nil)
		return OutcomeFailure
	}
	outcome, err := r.Backend.Submit(ctx, token)
	if err != nil {
		r.logError("token submission failed", err)
		return OutcomeFailure
	}
	if outcome != OutcomeSuccess {
		return OutcomeFailure
	}
	return OutcomeSuccess
}

func (r *Relay) logError(msg string, err error) {
	if r.Logger == nil {
		return
	}
	fields := map[string]any{}
	if err != nil {
		fields["error"] = err.Error()
	}
	r.Logger.Error(msg, fields)
}
