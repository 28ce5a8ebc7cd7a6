package walletpay

import (
	"encoding/json"

	"github.com/oapi-codegen/runtime"
)

// InstrumentType discriminates the display instrument inside a Token.
type InstrumentType string

// Defines values for InstrumentType.
const (
	InstrumentTypeCard    InstrumentType = "card"
	InstrumentTypeBalance InstrumentType = "balance"
)

// FundingType describes how a card instrument draws funds.
type FundingType string

// Defines values for FundingType.
const (
	FundingCredit  FundingType = "credit"
	FundingDebit   FundingType = "debit"
	FundingPrepaid FundingType = "prepaid"
)

// Token is the opaque authorization credential the wallet produces when the
// shopper approves. The SDK forwards it to the payment backend verbatim.
type Token struct {
	// TransactionID is the wallet's identifier for this authorization.
	TransactionID string `json:"transaction_id"`

	// PaymentData is the encrypted payload only the payment backend can
	// decrypt. It is never parsed, logged, or persisted here.
	PaymentData json.RawMessage `json:"payment_data"`

	// Instrument describes the funding source for display purposes only.
	Instrument *Instrument `json:"instrument,omitempty"`
}

// Instrument is the display-only funding source attached to a token. It is a
// union of InstrumentCard and InstrumentBalance, discriminated by "type".
type Instrument struct {
	union json.RawMessage
}

// InstrumentCard describes a card funding source.
type InstrumentCard struct {
	Type InstrumentType `json:"type"`

	// DisplayName is the wallet's masked description, such as "Visa ••4242".
	DisplayName string      `json:"display_name"`
	Network     Network     `json:"network"`
	FundingType FundingType `json:"funding_type"`
}

// InstrumentBalance describes a stored-balance funding source.
type InstrumentBalance struct {
	Type InstrumentType `json:"type"`

	DisplayName string `json:"display_name"`
	Currency    string `json:"currency"`
}

// Kind returns the union discriminator without decoding the full instrument.
func (t Instrument) Kind() (InstrumentType, error) {
	var probe struct {
		Type InstrumentType `json:"type"`
	}
	err := json.Unmarshal(t.union, &probe)
	return probe.Type, err
}

// AsInstrumentCard returns the union data inside the Instrument as an InstrumentCard
func (t Instrument) AsInstrumentCard() (InstrumentCard, error) {
	var body InstrumentCard
	err := json.Unmarshal(t.union, &body)
	return body, err
}

// FromInstrumentCard overwrites any union data inside the Instrument as the provided InstrumentCard
func (t *Instrument) FromInstrumentCard(v InstrumentCard) error {
	v.Type = InstrumentTypeCard
	b, err := json.Marshal(v)
	t.union = b
	return err
}

// MergeInstrumentCard performs a merge with any union data inside the Instrument, using the provided InstrumentCard
func (t *Instrument) MergeInstrumentCard(v InstrumentCard) error {
	v.Type = InstrumentTypeCard
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}

	merged, err := runtime.JSONMerge(t.union, b)
	t.union = merged
	return err
}

// AsInstrumentBalance returns the union data inside the Instrument as an InstrumentBalance
func (t Instrument) AsInstrumentBalance() (InstrumentBalance, error) {
	var body InstrumentBalance
	err := json.Unmarshal(t.union, &body)
	return body, err
}

// FromInstrumentBalance overwrites any union data inside the Instrument as the provided InstrumentBalance
func (t *Instrument) FromInstrumentBalance(v InstrumentBalance) error {
	v.Type = InstrumentTypeBalance
	b, err := json.Marshal(v)
	t.union = b
	return err
}

// MergeInstrumentBalance performs a merge with any union data inside the Instrument, using the provided InstrumentBalance
func (t *Instrument) MergeInstrumentBalance(v InstrumentBalance) error {
	v.Type = InstrumentTypeBalance
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}

	merged, err := runtime.JSONMerge(t.union, b)
	t.union = merged
	return err
}

// MarshalJSON serializes the underlying union for Instrument.
func (t Instrument) MarshalJSON() ([]byte, error) {
	b, err := t.union.MarshalJSON()
	return b, err
}

// UnmarshalJSON loads union data for Instrument.
func (t *Instrument) UnmarshalJSON(b []byte) error {
	err := t.union.UnmarshalJSON(b)
	return err
}
