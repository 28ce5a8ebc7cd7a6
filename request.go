package walletpay

import (
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// MerchantCapability is a bit set of payment capabilities the merchant's
// processing contract supports.
type MerchantCapability uint8

const (
	Capability3DS MerchantCapability = 1 << iota
	CapabilityEMV
	CapabilityCredit
	CapabilityDebit

	capabilityAll = Capability3DS | CapabilityEMV | CapabilityCredit | CapabilityDebit
)

// Has reports whether every capability in want is present.
func (c MerchantCapability) Has(want MerchantCapability) bool {
	return c&want == want
}

// Names lists the set capabilities in declaration order.
func (c MerchantCapability) Names() []string {
	var names []string
	if c.Has(Capability3DS) {
		names = append(names, "3ds")
	}
	if c.Has(CapabilityEMV) {
		names = append(names, "emv")
	}
	if c.Has(CapabilityCredit) {
		names = append(names, "credit")
	}
	if c.Has(CapabilityDebit) {
		names = append(names, "debit")
	}
	return names
}

// String renders the capability set for logs.
func (c MerchantCapability) String() string {
	names := c.Names()
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// RequestConfig is the merchant configuration for one authorization attempt.
// Callers supply it per attempt; nothing here is read from package state.
type RequestConfig struct {
	// MerchantID is the processor-assigned merchant identifier.
	MerchantID string `json:"merchant_id" validate:"required,max=128"`

	// RegionCode is the uppercase ISO 3166-1 alpha-2 country of the merchant.
	RegionCode string `json:"region_code" validate:"required,region"`

	// CurrencyCode is the uppercase ISO 4217 currency of the attempt.
	CurrencyCode string `json:"currency_code" validate:"required,currency"`

	// AcceptedNetworks lists card networks the merchant accepts. At least one
	// network is required.
	AcceptedNetworks []Network `json:"accepted_networks" validate:"required,min=1,dive,network"`

	// Capabilities is the merchant capability bit set. Must be non-empty and
	// contain only known bits.
	Capabilities MerchantCapability `json:"capabilities" validate:"required,capabilities"`
}

// PaymentRequest is the full descriptor handed to the authorization UI. It is
// built fresh for every attempt and never retained after presentation.
type PaymentRequest struct {
	MerchantID       string             `json:"merchant_id"`
	RegionCode       string             `json:"region_code"`
	CurrencyCode     string             `json:"currency_code"`
	AcceptedNetworks []Network          `json:"accepted_networks"`
	Capabilities     MerchantCapability `json:"capabilities"`

	// SummaryLines is the sheet content, ending with the Total row.
	SummaryLines []SummaryLine `json:"summary_lines"`
}

// Total returns the descriptor's closing Total row.
func (r *PaymentRequest) Total() SummaryLine {
	if r == nil || len(r.SummaryLines) == 0 {
		return SummaryLine{Label: LabelTotal}
	}
	return r.SummaryLines[len(r.SummaryLines)-1]
}

// BuildPaymentRequest validates the merchant configuration and summary lines
// and assembles the descriptor for the authorization UI. Any violation fails
// with a configuration error naming the offending field; no UI is involved.
func BuildPaymentRequest(cfg RequestConfig, lines []SummaryLine) (*PaymentRequest, error) {
	if err := cfg.Validate(); err != nil {
		opts := []errorOption{WithCause(err)}
		var violation *fieldViolation
		if errors.As(err, &violation) {
			opts = append(opts, WithOffendingParam(violation.Path))
		}
		return nil, NewConfigurationError("request configuration is invalid", opts...)
	}
	if err := verifySummaryLines(lines); err != nil {
		return nil, err
	}
	return &PaymentRequest{
		MerchantID:       cfg.MerchantID,
		RegionCode:       cfg.RegionCode,
		CurrencyCode:     cfg.CurrencyCode,
		AcceptedNetworks: append([]Network(nil), cfg.AcceptedNetworks...),
		Capabilities:     cfg.Capabilities,
		SummaryLines:     append([]SummaryLine(nil), lines...),
	}, nil
}

// verifySummaryLines checks the sheet invariant: non-negative rows and a
// closing Total row whose amount equals the exact sum of every row above it.
func verifySummaryLines(lines []SummaryLine) error {
	if len(lines) == 0 {
		return NewConfigurationError("summary has no lines", WithOffendingParam("summary_lines"))
	}
	last := lines[len(lines)-1]
	if last.Label != LabelTotal {
		return NewConfigurationError("summary must end with a Total line", WithOffendingParam("summary_lines"))
	}
	sum := decimal.Zero
	for i, line := range lines[:len(lines)-1] {
		if line.Amount.IsNegative() {
			param := "summary_lines[" + strconv.Itoa(i) + "].amount"
			return NewConfigurationError("summary line amount must not be negative", WithOffendingParam(param))
		}
		sum = sum.Add(line.Amount)
	}
	if !sum.Equal(last.Amount) {
		return NewConfigurationError("summary Total does not match the line sum", WithOffendingParam("summary_lines"))
	}
	return nil
}
