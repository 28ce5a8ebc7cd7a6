package walletpay

const (
	// Version is the release version of this SDK.
	Version = "0.4.0"

	// APIVersion pins the submission wire contract sent to payment backends.
	APIVersion = "2026-07-30"
)
