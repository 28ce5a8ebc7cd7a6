package walletpay

import "context"

// AttemptContext identifies the payment attempt that owns the current call.
// [Flow.Run] stores it on the context it passes to the authorization UI and
// the backend submitter, so integrations can correlate their own logs and
// traces with attempt events.
type AttemptContext struct {
	// Unique identifier of the attempt, the same value reported in
	// AttemptEvent and Result.
	//
	// Example: 7f9c24e8-3b1a-4a44-9642-6f7a1d2c9b10
	AttemptID string
	// Merchant identifier from the request configuration.
	//
	// Example: M-123
	MerchantID string
	// ISO 4217 currency of the attempt.
	//
	// Example: EUR
	Currency string
}

type attemptContextKey struct{}

func contextWithAttemptContext(ctx context.Context, attemptCtx *AttemptContext) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if attemptCtx == nil {
		return ctx
	}
	return context.WithValue(ctx, attemptContextKey{}, attemptCtx)
}

// AttemptContextFromContext extracts the attempt metadata previously stored on
// the context, or nil when the call did not originate from a running attempt.
func AttemptContextFromContext(ctx context.Context) *AttemptContext {
	if ctx == nil {
		return nil
	}
	if attemptCtx, ok := ctx.Value(attemptContextKey{}).(*AttemptContext); ok {
		return attemptCtx
	}
	return nil
}
