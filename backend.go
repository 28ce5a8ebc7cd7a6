package walletpay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sumup/walletpay/signature"
)

// Headers set on every token submission.
const (
	headerAPIVersion     = "API-Version"
	headerRequestID      = "Request-Id"
	headerIdempotencyKey = "Idempotency-Key"
	headerTimestamp      = "Timestamp"
	headerSignature      = "Signature"
)

// submission is the wire envelope posted to the payment backend.
type submission struct {
	APIVersion string `json:"api_version"`
	MerchantID string `json:"merchant_id,omitempty"`
	Token      *Token `json:"token"`
}

// submissionResult is the only response shape the backend may answer with.
type submissionResult struct {
	Approved bool `json:"approved"`
}

type backendConfig struct {
	client     *http.Client
	signer     signature.Signer
	apiKey     string
	merchantID string
	timeout    time.Duration
	clock      func() time.Time
	newID      func() string
}

// BackendOption customizes the backend client.
type BackendOption func(*backendConfig)

// WithHTTPClient replaces the HTTP client used for submissions.
func WithHTTPClient(client *http.Client) BackendOption {
	return func(cfg *backendConfig) {
		if client == nil {
			return
		}
		cfg.client = client
	}
}

// WithSigningKey signs every submission with an HMAC-SHA256 signature over
// `RFC3339(timestamp) + "." + canonicalBody`, carried in the Signature header.
func WithSigningKey(key []byte) BackendOption {
	return func(cfg *backendConfig) {
		cfg.signer = signature.HMACSigner{Key: key}
	}
}

// WithSigner replaces the submission signer, for keys held in KMS or similar.
func WithSigner(signer signature.Signer) BackendOption {
	return func(cfg *backendConfig) {
		cfg.signer = signer
	}
}

// WithAPIKey sends the key as an Authorization bearer token.
func WithAPIKey(key string) BackendOption {
	return func(cfg *backendConfig) {
		cfg.apiKey = key
	}
}

// WithMerchantID stamps the merchant identifier into the submission envelope.
func WithMerchantID(id string) BackendOption {
	return func(cfg *backendConfig) {
		cfg.merchantID = id
	}
}

// WithSubmitTimeout bounds a submission when the caller's context carries no
// deadline of its own. There is no default timeout: authorization waits are
// unbounded unless the caller bounds them.
func WithSubmitTimeout(d time.Duration) BackendOption {
	if d <= 0 {
		panic("walletpay: submit timeout must be positive")
	}
	return func(cfg *backendConfig) {
		cfg.timeout = d
	}
}

// withBackendClock provides deterministic time in tests.
func withBackendClock(fn func() time.Time) BackendOption {
	return func(cfg *backendConfig) {
		cfg.clock = fn
	}
}

// withRequestIDs provides deterministic request identifiers in tests.
func withRequestIDs(fn func() string) BackendOption {
	return func(cfg *backendConfig) {
		cfg.newID = fn
	}
}

// BackendClient submits wallet tokens to a merchant payment backend over
// HTTPS. It implements [Submitter]. The client never retries: the relay owns
// outcome semantics and every submission must happen at most once.
type BackendClient struct {
	endpoint string
	cfg      backendConfig
}

var _ Submitter = (*BackendClient)(nil)

// NewBackendClient builds a client posting submissions to endpoint.
func NewBackendClient(endpoint string, opts ...BackendOption) *BackendClient {
	if endpoint == "" {
		panic("walletpay: backend endpoint is required")
	}
	cfg := backendConfig{
		client: http.DefaultClient,
		clock:  time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return &BackendClient{endpoint: endpoint, cfg: cfg}
}

// Submit posts the token and maps the backend's answer onto the binary
// outcome. An explicit decline is (OutcomeFailure, nil); transport errors,
// non-2xx statuses, and unreadable responses carry a backend failure error
// alongside OutcomeFailure.
//
// When ctx carries an [AttemptContext], the attempt ID becomes the
// Idempotency-Key so the backend can dedupe submissions per attempt.
func (c *BackendClient) Submit(ctx context.Context, token *Token) (Outcome, error) {
	if token == nil {
		return OutcomeFailure, NewBackendFailureError("no token to submit", WithErrorCode(BackendTransport))
	}
	body, err := json.Marshal(submission{
		APIVersion: APIVersion,
		MerchantID: c.cfg.merchantID,
		Token:      token,
	})
	if err != nil {
		return OutcomeFailure, NewBackendFailureError("encode submission", WithErrorCode(BackendTransport), WithCause(err))
	}
	canonical, err := signature.CanonicalizeJSONBody(body)
	if err != nil {
		return OutcomeFailure, NewBackendFailureError("canonicalize submission", WithErrorCode(BackendTransport), WithCause(err))
	}

	// Use the caller's context, applying the configured timeout only when the
	// caller set no deadline.
	reqCtx := ctx
	if _, hasDeadline := ctx.Deadline(); !hasDeadline && c.cfg.timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, c.cfg.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.endpoint, bytes.NewReader(canonical))
	if err != nil {
		return OutcomeFailure, NewBackendFailureError("build submission request", WithErrorCode(BackendTransport), WithCause(err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(headerAPIVersion, APIVersion)
	req.Header.Set(headerRequestID, c.cfg.newID())
	idempotencyKey := ""
	if attemptCtx := AttemptContextFromContext(ctx); attemptCtx != nil {
		idempotencyKey = attemptCtx.AttemptID
	}
	if idempotencyKey == "" {
		idempotencyKey = c.cfg.newID()
	}
	req.Header.Set(headerIdempotencyKey, idempotencyKey)
	ts := c.cfg.clock()
	req.Header.Set(headerTimestamp, ts.UTC().Format(time.RFC3339Nano))
	if c.cfg.signer != nil {
		sig, err := c.cfg.signer.Sign(reqCtx, ts, canonical)
		if err != nil {
			return OutcomeFailure, NewBackendFailureError("sign submission", WithErrorCode(BackendTransport), WithCause(err))
		}
		req.Header.Set(headerSignature, sig)
	}
	if c.cfg.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.apiKey)
	}

	resp, err := c.cfg.client.Do(req)
	if err != nil {
		return OutcomeFailure, NewBackendFailureError("send submission", WithErrorCode(BackendTransport), WithCause(err))
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		msg := fmt.Sprintf("backend %s returned %s: %s", c.endpoint, resp.Status, strings.TrimSpace(string(snippet)))
		return OutcomeFailure, NewBackendFailureError(msg, WithErrorCode(BackendStatus))
	}

	var result submissionResult
	if err := decodeJSON(resp.Body, &result); err != nil {
		return OutcomeFailure, NewBackendFailureError("decode submission response", WithErrorCode(BackendResponse), WithCause(err))
	}
	if !result.Approved {
		return OutcomeFailure, nil
	}
	return OutcomeSuccess, nil
}

// decodeJSON strictly decodes a single JSON document: unknown fields and
// trailing data are errors.
func decodeJSON(body io.ReadCloser, v any) error {
	defer func() { _ = body.Close() }()
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("response body required")
		}
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}
