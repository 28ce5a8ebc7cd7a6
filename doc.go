// Package walletpay orchestrates tap-to-pay authorization attempts on the
// client side: it renders carts into payment sheet summaries, gates on wallet
// capability, drives the platform's modal authorization UI, and relays the
// resulting wallet token to the merchant's payment backend.
//
// # Flow
//
// Use [NewFlow] with an [AuthorizationUI] binding for the platform sheet, a
// [CapabilityProber] for the device wallet, and a [Submitter] for the payment
// backend, then call [Flow.Run] once per attempt. Every attempt ends in
// exactly one terminal: authorized, declined, cancelled, or an error that
// prevented the shopper from ever deciding. Nothing is retried inside the SDK.
//
// # Backend submission
//
// [NewBackendClient] is the HTTP [Submitter]: it posts the token envelope
// with canonical JSON bodies, idempotency keys, and optional HMAC signatures
// backends verify with [signature.HMACVerifier]. The backend answers with a
// single boolean; the SDK maps it onto the binary [Outcome] the sheet
// displays.
//
// # How it works
//
//   - The merchant app builds a cart and calls Run with its per-attempt
//     configuration.
//   - The SDK checks wallet capability, validates the configuration, and
//     presents the sheet with the exact summary lines.
//   - The shopper approves or cancels; approval yields an opaque token the
//     SDK never decrypts.
//   - The token is submitted once to the merchant backend, and the binary
//     outcome flows back through the sheet to the shopper.
package walletpay
