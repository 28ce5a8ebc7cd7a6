package walletpay

import "context"

// Outcome is the binary result surfaced back to the authorization sheet after
// a token submission. There is no third value: every submission maps to
// success or failure.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// AuthorizeFunc receives the wallet token after the shopper approves. The
// sheet calls it at most once per presentation and renders its returned
// Outcome before dismissing. Implementations block until the submission
// finished; the sheet stays up for the whole call.
type AuthorizeFunc func(ctx context.Context, token *Token) Outcome

// AuthorizationUI presents the platform's modal payment sheet for a single
// descriptor. The call blocks until the sheet is dismissed.
//
// Returning a nil error without having called authorize means the shopper
// cancelled. Returning a non-nil error means the sheet could not be shown at
// all; no authorization took place. The descriptor must not be retained after
// the call returns.
type AuthorizationUI interface {
	PresentAuthorization(ctx context.Context, req *PaymentRequest, authorize AuthorizeFunc) error
}

// AuthorizationUIFunc lifts bare functions into [AuthorizationUI].
type AuthorizationUIFunc func(ctx context.Context, req *PaymentRequest, authorize AuthorizeFunc) error

// PresentAuthorization presents the sheet using the wrapped function.
func (f AuthorizationUIFunc) PresentAuthorization(ctx context.Context, req *PaymentRequest, authorize AuthorizeFunc) error {
	return f(ctx, req, authorize)
}
