package walletpay

// ErrorType classifies how a payment attempt failed.
type ErrorType string

const (
	InvalidArgument    ErrorType = "invalid_argument"    // Caller passed data that violates a precondition.
	NotSupported       ErrorType = "not_supported"       // Device or wallet cannot authorize payments.
	ConfigurationError ErrorType = "configuration_error" // Request descriptor malformed or sheet could not present.
	UserCancelled      ErrorType = "user_cancelled"      // Shopper dismissed the sheet without approving.
	BackendFailure     ErrorType = "backend_failure"     // Submission to the payment backend did not succeed.
)

// ErrorCode is a machine-readable identifier for the specific failure.
type ErrorCode string

const (
	NegativeAmount     ErrorCode = "negative_amount"     // Item price, tax, or shipping below zero.
	EmptyCart          ErrorCode = "empty_cart"          // Summary requested for a cart with no items.
	InvalidDescriptor  ErrorCode = "invalid_descriptor"  // Request configuration failed validation.
	WalletUnavailable  ErrorCode = "wallet_unavailable"  // Capability probe answered no.
	PresentationFailed ErrorCode = "presentation_failed" // Authorization sheet could not be shown.
	SheetDismissed     ErrorCode = "sheet_dismissed"     // Sheet closed before the shopper approved.
	BackendTransport   ErrorCode = "backend_transport"   // Request never produced a usable response.
	BackendStatus      ErrorCode = "backend_status"      // Backend answered with a non-2xx status.
	BackendResponse    ErrorCode = "backend_response"    // Backend answered 2xx but the body was unreadable.
)

// Error is the structured error reported for a failed payment attempt.
type Error struct {
	Type    ErrorType `json:"type"`
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Param   *string   `json:"param,omitempty"`

	cause error `json:"-"`
}

// Error makes *Error satisfy the stdlib error interface.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is and errors.As.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

type errorOption func(*Error)

// WithOffendingParam sets the JSON path for the field that triggered the error.
func WithOffendingParam(jsonPath string) errorOption {
	return func(er *Error) {
		er.Param = &jsonPath
	}
}

// WithErrorCode overrides the default code derived from the error type.
func WithErrorCode(code ErrorCode) errorOption {
	return func(er *Error) {
		er.Code = code
	}
}

// WithCause attaches the error that triggered this one.
func WithCause(err error) errorOption {
	return func(er *Error) {
		er.cause = err
	}
}

// NewInvalidArgumentError reports a violated precondition on caller input.
func NewInvalidArgumentError(message string, opts ...errorOption) *Error {
	return newError(InvalidArgument, ErrorCode(InvalidArgument), message, opts...)
}

// NewNotSupportedError reports that the wallet cannot authorize on this device.
func NewNotSupportedError(message string, opts ...errorOption) *Error {
	return newError(NotSupported, WalletUnavailable, message, opts...)
}

// NewConfigurationError reports a malformed request descriptor or a sheet that
// could not be presented.
func NewConfigurationError(message string, opts ...errorOption) *Error {
	return newError(ConfigurationError, InvalidDescriptor, message, opts...)
}

// NewUserCancelledError reports a sheet dismissed without approval. Cancellation
// is a normal terminal state, not a defect.
func NewUserCancelledError(message string, opts ...errorOption) *Error {
	return newError(UserCancelled, SheetDismissed, message, opts...)
}

// NewBackendFailureError reports a token submission the backend did not accept.
func NewBackendFailureError(message string, opts ...errorOption) *Error {
	return newError(BackendFailure, ErrorCode(BackendFailure), message, opts...)
}

// newError builds a typed error with the attempt error schema.
func newError(typ ErrorType, code ErrorCode, message string, opts ...errorOption) *Error {
	errPayload := &Error{
		Type:    typ,
		Code:    code,
		Message: message,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(errPayload)
	}
	return errPayload
}
