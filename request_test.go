package walletpay

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestRequestConfigValidateAcceptsValidConfig(t *testing.T) {
	t.Parallel()

	if err := testConfig().Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestRequestConfigValidateViolations(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		mutate   func(cfg *RequestConfig)
		wantPath string
		wantMsg  string
	}{
		{
			name:     "missing merchant id",
			mutate:   func(cfg *RequestConfig) { cfg.MerchantID = "" },
			wantPath: "merchant_id",
			wantMsg:  "is required",
		},
		{
			name:     "lowercase currency",
			mutate:   func(cfg *RequestConfig) { cfg.CurrencyCode = "eur" },
			wantPath: "currency_code",
			wantMsg:  "must be an uppercase 3-letter ISO-4217 code",
		},
		{
			name:     "bad region",
			mutate:   func(cfg *RequestConfig) { cfg.RegionCode = "DEU" },
			wantPath: "region_code",
			wantMsg:  "must be an uppercase 2-letter ISO-3166 code",
		},
		{
			name:     "no networks",
			mutate:   func(cfg *RequestConfig) { cfg.AcceptedNetworks = nil },
			wantPath: "accepted_networks",
			wantMsg:  "is required",
		},
		{
			name: "unknown network",
			mutate: func(cfg *RequestConfig) {
				cfg.AcceptedNetworks = []Network{NetworkVisa, Network("bartercard")}
			},
			wantPath: "accepted_networks[1]",
			wantMsg:  "must be a known card network",
		},
		{
			name:     "no capabilities",
			mutate:   func(cfg *RequestConfig) { cfg.Capabilities = 0 },
			wantPath: "capabilities",
			wantMsg:  "is required",
		},
		{
			name:     "unknown capability bits",
			mutate:   func(cfg *RequestConfig) { cfg.Capabilities = MerchantCapability(1 << 7) },
			wantPath: "capabilities",
			wantMsg:  "contains unknown capability bits",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := testConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected validation error")
			}
			var violation *fieldViolation
			if !errors.As(err, &violation) {
				t.Fatalf("expected field violation, got %v", err)
			}
			if violation.Path != tc.wantPath {
				t.Fatalf("expected path %q got %q", tc.wantPath, violation.Path)
			}
			if !strings.Contains(violation.Message, tc.wantMsg) {
				t.Fatalf("expected message containing %q got %q", tc.wantMsg, violation.Message)
			}
		})
	}
}

func TestBuildPaymentRequestAssemblesDescriptor(t *testing.T) {
	t.Parallel()

	lines, err := BuildSummary(testCart().Items, decimal.Zero, decimal.RequireFromString("5.00"))
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	req, err := BuildPaymentRequest(testConfig(), lines)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if req.MerchantID != "M-123" || req.CurrencyCode != "EUR" || req.RegionCode != "DE" {
		t.Fatalf("unexpected descriptor identity: %+v", req)
	}
	if len(req.SummaryLines) != len(lines) {
		t.Fatalf("expected %d summary lines got %d", len(lines), len(req.SummaryLines))
	}
	if !req.Total().Amount.Equal(decimal.RequireFromString("40.50")) {
		t.Fatalf("expected total 40.50 got %s", req.Total().Amount)
	}
}

func TestBuildPaymentRequestRejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.CurrencyCode = "euros"
	lines := []SummaryLine{{Label: LabelTotal, Amount: decimal.Zero}}

	_, err := BuildPaymentRequest(cfg, lines)
	var typed *Error
	if !errors.As(err, &typed) || typed.Type != ConfigurationError {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if typed.Param == nil || *typed.Param != "currency_code" {
		t.Fatalf("expected offending param currency_code, got %+v", typed.Param)
	}
}

func TestBuildPaymentRequestVerifiesSummaryIntegrity(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		lines     []SummaryLine
		wantParam string
	}{
		{
			name:      "no lines",
			lines:     nil,
			wantParam: "summary_lines",
		},
		{
			name: "missing total line",
			lines: []SummaryLine{
				{Label: "Widget", Amount: decimal.RequireFromString("10.00")},
			},
			wantParam: "summary_lines",
		},
		{
			name: "total mismatch",
			lines: []SummaryLine{
				{Label: "Widget", Amount: decimal.RequireFromString("10.00")},
				{Label: LabelTotal, Amount: decimal.RequireFromString("11.00")},
			},
			wantParam: "summary_lines",
		},
		{
			name: "negative row",
			lines: []SummaryLine{
				{Label: "Refund", Amount: decimal.RequireFromString("-1.00")},
				{Label: LabelTotal, Amount: decimal.RequireFromString("-1.00")},
			},
			wantParam: "summary_lines[0].amount",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := BuildPaymentRequest(testConfig(), tc.lines)
			var typed *Error
			if !errors.As(err, &typed) || typed.Type != ConfigurationError {
				t.Fatalf("expected configuration error, got %v", err)
			}
			if typed.Param == nil || *typed.Param != tc.wantParam {
				t.Fatalf("expected param %q got %+v", tc.wantParam, typed.Param)
			}
		})
	}
}

func TestBuildPaymentRequestCopiesInputs(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	lines, err := BuildSummary(testCart().Items, decimal.Zero, decimal.Zero)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	req, err := BuildPaymentRequest(cfg, lines)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	cfg.AcceptedNetworks[0] = Network("bartercard")
	lines[0].Label = "tampered"

	if req.AcceptedNetworks[0] != NetworkVisa {
		t.Fatalf("descriptor networks must not alias caller slice")
	}
	if req.SummaryLines[0].Label != "Widget" {
		t.Fatalf("descriptor lines must not alias caller slice")
	}
}

func TestMerchantCapabilityHasAndNames(t *testing.T) {
	t.Parallel()

	caps := Capability3DS | CapabilityDebit
	if !caps.Has(Capability3DS) || !caps.Has(CapabilityDebit) {
		t.Fatalf("expected set bits to be reported")
	}
	if caps.Has(CapabilityEMV) {
		t.Fatalf("unset bit reported as present")
	}
	if got := caps.String(); got != "3ds|debit" {
		t.Fatalf("expected 3ds|debit got %s", got)
	}
	if got := MerchantCapability(0).String(); got != "none" {
		t.Fatalf("expected none got %s", got)
	}
}
