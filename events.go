package walletpay

import (
	"time"

	"github.com/shopspring/decimal"
)

// AttemptEventType represents the type of attempt lifecycle event.
type AttemptEventType string

const (
	// AttemptEventStarted indicates an authorization attempt is beginning.
	AttemptEventStarted AttemptEventType = "attempt"

	// AttemptEventAuthorized indicates the shopper approved and a token was
	// received from the wallet.
	AttemptEventAuthorized AttemptEventType = "authorized"

	// AttemptEventSuccess indicates the backend accepted the token.
	AttemptEventSuccess AttemptEventType = "success"

	// AttemptEventFailure indicates the attempt ended without an accepted
	// payment, whether before, during, or after presentation.
	AttemptEventFailure AttemptEventType = "failure"

	// AttemptEventCancelled indicates the shopper dismissed the sheet.
	AttemptEventCancelled AttemptEventType = "cancelled"
)

// AttemptEvent describes one step in an authorization attempt's lifecycle.
// Events carry display and diagnostic data only; the wallet token never
// appears here.
type AttemptEvent struct {
	// Type is the event type.
	Type AttemptEventType

	// AttemptID correlates every event of one Run call.
	AttemptID string

	// Timestamp is when the event occurred.
	Timestamp time.Time

	// MerchantID is the merchant the attempt belongs to.
	MerchantID string

	// Currency is the attempt's ISO 4217 currency code.
	Currency string

	// Total is the sheet's Total amount.
	Total decimal.Decimal

	// Networks lists the accepted card networks of the attempt.
	Networks []Network

	// Error contains failure details (set on failure events).
	Error error

	// Duration is the time since the attempt started (zero on the first
	// event).
	Duration time.Duration
}

// AttemptCallback handles attempt lifecycle events. Callbacks run
// synchronously inside the attempt, so they must be fast; spawn a goroutine
// for anything slow.
type AttemptCallback func(AttemptEvent)
