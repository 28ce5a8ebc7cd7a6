package walletpay

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// AttemptState is one step in the fixed lifecycle of an authorization attempt.
type AttemptState string

const (
	StateIdle               AttemptState = "idle"
	StateCapabilityChecked  AttemptState = "capability_checked"
	StateRequestBuilt       AttemptState = "request_built"
	StatePresented          AttemptState = "presented"
	StateUserApproved       AttemptState = "user_approved"
	StateTokenReceived      AttemptState = "token_received"
	StateBackendSubmitted   AttemptState = "backend_submitted"
	StateUserCancelled      AttemptState = "user_cancelled"
	StatePresentationFailed AttemptState = "presentation_failed"
	StateCompleted          AttemptState = "completed"
)

// Status is the terminal disposition of an attempt that reached the shopper.
type Status string

const (
	StatusAuthorized Status = "authorized"
	StatusDeclined   Status = "declined"
	StatusCancelled  Status = "cancelled"
)

// Result reports how an attempt ended. Outcome is empty unless a token was
// submitted to the backend.
type Result struct {
	// AttemptID correlates the result with logs, metrics, and events.
	AttemptID string `json:"attempt_id"`

	Status  Status  `json:"status"`
	Outcome Outcome `json:"outcome,omitempty"`

	// Trace lists the lifecycle states the attempt visited, in order.
	Trace []AttemptState `json:"trace"`
}

// Flow runs authorization attempts against a wallet UI, a capability prober,
// and a payment backend. A Flow holds no attempt state; each Run is fully
// independent and a Flow is safe for concurrent use.
type Flow struct {
	ui      AuthorizationUI
	prober  CapabilityProber
	backend Submitter
	cfg     config
}

// NewFlow builds a Flow. The UI and backend are required collaborators;
// passing nil for either panics. A nil prober is allowed and makes every
// attempt fail as not supported, matching a device without a wallet binding.
func NewFlow(ui AuthorizationUI, prober CapabilityProber, backend Submitter, opts ...Option) *Flow {
	if ui == nil {
		panic("walletpay: authorization UI is required")
	}
	if backend == nil {
		panic("walletpay: backend submitter is required")
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return &Flow{
		ui:      ui,
		prober:  prober,
		backend: backend,
		cfg:     cfg,
	}
}

// Run executes one authorization attempt end to end: capability gate, summary
// and descriptor construction, sheet presentation, and token submission.
//
// The error taxonomy is strict. Run returns an error only when the attempt
// never reached a shopper decision: *Error of type not_supported when the
// wallet cannot pay, or configuration_error when the descriptor is invalid or
// the sheet failed to present. Shopper cancellation and backend declines are
// normal terminals reported through the Result, not as errors. Nothing is
// retried; every terminal is final for this attempt.
//
// The context passed to the UI and the backend carries an [AttemptContext]
// identifying the attempt.
func (f *Flow) Run(ctx context.Context, cfg RequestConfig, cart Cart) (*Result, error) {
	a := f.newAttempt(cfg)
	ctx = contextWithAttemptContext(ctx, &AttemptContext{
		AttemptID:  a.id,
		MerchantID: cfg.MerchantID,
		Currency:   cfg.CurrencyCode,
	})

	supported := CanAuthorize(ctx, f.prober, cfg.AcceptedNetworks...)
	a.transition(StateCapabilityChecked)
	if !supported {
		err := NewNotSupportedError("wallet cannot authorize payments on this device")
		f.cfg.logger.Warn("wallet unavailable, skipping presentation", map[string]any{
			"attempt_id": a.id,
			"merchant":   cfg.MerchantID,
			"networks":   cfg.AcceptedNetworks,
		})
		return nil, a.fail(err)
	}

	lines, err := BuildSummary(cart.Items, cart.Tax, cart.Shipping)
	if err != nil {
		cfgErr := asConfigurationError("cart summary is invalid", err)
		f.cfg.logger.Error("cart summary rejected", map[string]any{
			"attempt_id": a.id,
			"error":      cfgErr.Error(),
		})
		return nil, a.fail(cfgErr)
	}
	a.total = SummaryTotal(lines)
	req, err := BuildPaymentRequest(cfg, lines)
	if err != nil {
		cfgErr := asConfigurationError("request descriptor is invalid", err)
		f.cfg.logger.Error("request descriptor rejected", map[string]any{
			"attempt_id": a.id,
			"error":      cfgErr.Error(),
		})
		return nil, a.fail(cfgErr)
	}
	a.transition(StateRequestBuilt)
	a.emit(AttemptEventStarted, nil)
	f.cfg.metrics.IncCounter(string(AttemptEventStarted), nil)

	a.transition(StatePresented)
	presentedAt := f.cfg.clock()
	presentErr := f.ui.PresentAuthorization(ctx, req, a.authorize)
	f.cfg.metrics.ObserveLatency("presentation", f.cfg.clock().Sub(presentedAt), map[string]string{
		"outcome": string(a.outcome),
	})
	if presentErr != nil {
		a.transition(StatePresentationFailed)
		cfgErr := NewConfigurationError("authorization sheet failed to present",
			WithErrorCode(PresentationFailed), WithCause(presentErr))
		f.cfg.logger.Error("presentation failed", map[string]any{
			"attempt_id": a.id,
			"error":      presentErr.Error(),
		})
		return nil, a.fail(cfgErr)
	}

	if !a.approved {
		a.transition(StateUserCancelled)
		a.emit(AttemptEventCancelled, nil)
		f.cfg.metrics.IncCounter(string(AttemptEventCancelled), nil)
		a.transition(StateCompleted)
		f.cfg.logger.Info("attempt cancelled by shopper", map[string]any{
			"attempt_id": a.id,
		})
		return &Result{AttemptID: a.id, Status: StatusCancelled, Trace: a.trace}, nil
	}

	status := StatusDeclined
	eventType := AttemptEventFailure
	if a.outcome == OutcomeSuccess {
		status = StatusAuthorized
		eventType = AttemptEventSuccess
	}
	a.emit(eventType, nil)
	f.cfg.metrics.IncCounter(string(eventType), map[string]string{
		"outcome": string(a.outcome),
	})
	a.transition(StateCompleted)
	f.cfg.logger.Info("attempt completed", map[string]any{
		"attempt_id": a.id,
		"status":     string(status),
		"outcome":    string(a.outcome),
	})
	return &Result{AttemptID: a.id, Status: status, Outcome: a.outcome, Trace: a.trace}, nil
}

// attempt carries the state of a single Run call. Nothing here outlives the
// call or is shared between attempts.
type attempt struct {
	flow     *Flow
	id       string
	merchant string
	currency string
	networks []Network
	total    decimal.Decimal
	started  time.Time
	trace    []AttemptState
	relay    *Relay

	approved bool
	outcome  Outcome
}

func (f *Flow) newAttempt(cfg RequestConfig) *attempt {
	a := &attempt{
		flow:     f,
		id:       f.cfg.idGenerator(),
		merchant: cfg.MerchantID,
		currency: cfg.CurrencyCode,
		networks: append([]Network(nil), cfg.AcceptedNetworks...),
		started:  f.cfg.clock(),
		trace:    []AttemptState{StateIdle},
	}
	a.relay = &Relay{
		Backend:  f.backend,
		Complete: a.complete,
		Logger:   f.cfg.logger,
	}
	return a
}

// authorize is the AuthorizeFunc handed to the sheet. The sheet calls it at
// most once, after the shopper approves.
func (a *attempt) authorize(ctx context.Context, token *Token) Outcome {
	a.approved = true
	a.transition(StateUserApproved)
	a.transition(StateTokenReceived)
	a.emit(AttemptEventAuthorized, nil)
	submittedAt := a.flow.cfg.clock()
	outcome := a.relay.Relay(ctx, token)
	a.transition(StateBackendSubmitted)
	a.flow.cfg.metrics.ObserveLatency("submission", a.flow.cfg.clock().Sub(submittedAt), map[string]string{
		"outcome": string(outcome),
	})
	return outcome
}

// complete records the relay's outcome. The relay guarantees it runs exactly
// once per attempt.
func (a *attempt) complete(outcome Outcome) {
	a.outcome = outcome
}

// fail closes the attempt on an error path and returns err unchanged.
func (a *attempt) fail(err *Error) *Error {
	a.emit(AttemptEventFailure, err)
	a.flow.cfg.metrics.IncCounter(string(AttemptEventFailure), map[string]string{
		"outcome": string(a.outcome),
	})
	a.transition(StateCompleted)
	return err
}

func (a *attempt) transition(state AttemptState) {
	a.trace = append(a.trace, state)
	a.flow.cfg.logger.Debug("attempt state changed", map[string]any{
		"attempt_id": a.id,
		"state":      string(state),
	})
}

func (a *attempt) emit(typ AttemptEventType, err error) {
	now := a.flow.cfg.clock()
	evt := AttemptEvent{
		Type:       typ,
		AttemptID:  a.id,
		Timestamp:  now,
		MerchantID: a.merchant,
		Currency:   a.currency,
		Total:      a.total,
		Networks:   a.networks,
		Error:      err,
	}
	if typ != AttemptEventStarted {
		evt.Duration = now.Sub(a.started)
	}
	for _, cb := range a.flow.cfg.callbacks {
		cb(evt)
	}
}

// asConfigurationError lifts lower-level build errors into the attempt-level
// configuration error, preserving the offending param and the cause chain.
// Errors that already carry the configuration type pass through untouched.
func asConfigurationError(msg string, err error) *Error {
	var typed *Error
	if errors.As(err, &typed) {
		if typed.Type == ConfigurationError {
			return typed
		}
		opts := []errorOption{WithCause(typed)}
		if typed.Param != nil {
			opts = append(opts, WithOffendingParam(*typed.Param))
		}
		return NewConfigurationError(msg, opts...)
	}
	return NewConfigurationError(msg, WithCause(err))
}
