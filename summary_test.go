package walletpay

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestBuildSummaryWorkedExample(t *testing.T) {
	t.Parallel()

	items := []CartItem{
		{Name: "Widget", Price: decimal.RequireFromString("10.00")},
		{Name: "Gadget", Price: decimal.RequireFromString("25.50")},
	}
	lines, err := BuildSummary(items, decimal.Zero, decimal.RequireFromString("5.00"))
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	wantLabels := []string{"Widget", "Gadget", LabelShipping, LabelTotal}
	if len(lines) != len(wantLabels) {
		t.Fatalf("expected %d lines got %d: %v", len(wantLabels), len(lines), lines)
	}
	for i, want := range wantLabels {
		if lines[i].Label != want {
			t.Fatalf("expected line %d to be %q got %q", i, want, lines[i].Label)
		}
	}
	if !lines[len(lines)-1].Amount.Equal(decimal.RequireFromString("40.50")) {
		t.Fatalf("expected total 40.50 got %s", lines[len(lines)-1].Amount)
	}
	for _, line := range lines {
		if line.Label == LabelTax {
			t.Fatalf("zero tax must not produce a Tax line: %v", lines)
		}
	}
}

func TestBuildSummaryOmitsZeroTaxAndShipping(t *testing.T) {
	t.Parallel()

	items := []CartItem{{Name: "Widget", Price: decimal.RequireFromString("10.00")}}
	lines, err := BuildSummary(items, decimal.Zero, decimal.Zero)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected item + Total only, got %v", lines)
	}
	if lines[1].Label != LabelTotal || !lines[1].Amount.Equal(decimal.RequireFromString("10.00")) {
		t.Fatalf("expected Total 10.00 got %+v", lines[1])
	}
}

func TestBuildSummaryIncludesPositiveTaxAndShipping(t *testing.T) {
	t.Parallel()

	items := []CartItem{{Name: "Widget", Price: decimal.RequireFromString("10.00")}}
	lines, err := BuildSummary(items, decimal.RequireFromString("1.90"), decimal.RequireFromString("4.10"))
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	wantLabels := []string{"Widget", LabelTax, LabelShipping, LabelTotal}
	for i, want := range wantLabels {
		if lines[i].Label != want {
			t.Fatalf("expected line %d to be %q got %q", i, want, lines[i].Label)
		}
	}
	if !lines[3].Amount.Equal(decimal.RequireFromString("16.00")) {
		t.Fatalf("expected total 16.00 got %s", lines[3].Amount)
	}
}

func TestBuildSummaryTotalIsExact(t *testing.T) {
	t.Parallel()

	// Amounts chosen to drift under binary floating point.
	items := []CartItem{
		{Name: "A", Price: decimal.RequireFromString("0.10")},
		{Name: "B", Price: decimal.RequireFromString("0.20")},
		{Name: "C", Price: decimal.RequireFromString("0.0000001")},
	}
	lines, err := BuildSummary(items, decimal.RequireFromString("0.30"), decimal.Zero)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	total := lines[len(lines)-1].Amount
	if !total.Equal(decimal.RequireFromString("0.6000001")) {
		t.Fatalf("expected exact total 0.6000001 got %s", total)
	}

	sum := decimal.Zero
	for _, line := range lines[:len(lines)-1] {
		sum = sum.Add(line.Amount)
	}
	if !sum.Equal(total) {
		t.Fatalf("total %s must equal the exact line sum %s", total, sum)
	}
}

func TestBuildSummaryIsDeterministic(t *testing.T) {
	t.Parallel()

	items := []CartItem{
		{Name: "Widget", Price: decimal.RequireFromString("10.00")},
		{Name: "Gadget", Price: decimal.RequireFromString("25.50")},
	}
	first, err := BuildSummary(items, decimal.RequireFromString("2.00"), decimal.RequireFromString("5.00"))
	if err != nil {
		t.Fatalf("first build: %v", err)
	}
	second, err := BuildSummary(items, decimal.RequireFromString("2.00"), decimal.RequireFromString("5.00"))
	if err != nil {
		t.Fatalf("second build: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("expected identical summaries, got %v and %v", first, second)
	}
	for i := range first {
		if first[i].Label != second[i].Label || !first[i].Amount.Equal(second[i].Amount) {
			t.Fatalf("line %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestBuildSummaryRejectsNegativeAmounts(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		items     []CartItem
		tax       decimal.Decimal
		shipping  decimal.Decimal
		wantParam string
	}{
		{
			name: "negative item price",
			items: []CartItem{
				{Name: "Widget", Price: decimal.RequireFromString("10.00")},
				{Name: "Refund", Price: decimal.RequireFromString("-2.00")},
			},
			wantParam: "items[1].price",
		},
		{
			name:      "negative tax",
			items:     []CartItem{{Name: "Widget", Price: decimal.RequireFromString("10.00")}},
			tax:       decimal.RequireFromString("-0.01"),
			wantParam: "tax",
		},
		{
			name:      "negative shipping",
			items:     []CartItem{{Name: "Widget", Price: decimal.RequireFromString("10.00")}},
			shipping:  decimal.RequireFromString("-5.00"),
			wantParam: "shipping",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := BuildSummary(tc.items, tc.tax, tc.shipping)
			var typed *Error
			if !errors.As(err, &typed) {
				t.Fatalf("expected typed error, got %v", err)
			}
			if typed.Type != InvalidArgument || typed.Code != NegativeAmount {
				t.Fatalf("expected invalid_argument/negative_amount got %s/%s", typed.Type, typed.Code)
			}
			if typed.Param == nil || *typed.Param != tc.wantParam {
				t.Fatalf("expected param %q got %+v", tc.wantParam, typed.Param)
			}
		})
	}
}

func TestBuildSummaryRejectsEmptyCart(t *testing.T) {
	t.Parallel()

	_, err := BuildSummary(nil, decimal.Zero, decimal.Zero)
	var typed *Error
	if !errors.As(err, &typed) || typed.Code != EmptyCart {
		t.Fatalf("expected empty_cart error, got %v", err)
	}
}

func TestSummaryTotal(t *testing.T) {
	t.Parallel()

	if !SummaryTotal(nil).Equal(decimal.Zero) {
		t.Fatalf("expected zero total for empty summary")
	}
	lines := []SummaryLine{
		{Label: "Widget", Amount: decimal.RequireFromString("10.00")},
		{Label: LabelTotal, Amount: decimal.RequireFromString("10.00")},
	}
	if !SummaryTotal(lines).Equal(decimal.RequireFromString("10.00")) {
		t.Fatalf("expected total 10.00 got %s", SummaryTotal(lines))
	}
}
