package walletpay

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Summary line labels shown on the authorization sheet. Item lines carry the
// item name instead.
const (
	LabelTax      = "Tax"
	LabelShipping = "Shipping"
	LabelTotal    = "Total"
)

// CartItem is a single purchasable line in the shopper's cart. Prices are
// exact decimal amounts in the attempt currency's major unit.
type CartItem struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Cart is the shopper's cart for one authorization attempt.
type Cart struct {
	Items    []CartItem      `json:"items"`
	Tax      decimal.Decimal `json:"tax"`
	Shipping decimal.Decimal `json:"shipping"`
}

// SummaryLine is one row of the payment sheet: every cart item in order,
// optional Tax and Shipping rows, and a closing Total row.
type SummaryLine struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// BuildSummary renders a cart into the ordered summary lines the authorization
// sheet displays. Tax and Shipping rows appear only when strictly positive; a
// zero amount produces no row. The Total row is always last and always the
// exact decimal sum of everything above it, recomputed on every call.
//
// BuildSummary never mutates items and keeps no state between calls. Negative
// amounts violate the precondition and fail with an invalid-argument error
// naming the offending parameter.
func BuildSummary(items []CartItem, tax, shipping decimal.Decimal) ([]SummaryLine, error) {
	if len(items) == 0 {
		return nil, NewInvalidArgumentError("cart has no items", WithErrorCode(EmptyCart), WithOffendingParam("items"))
	}
	if tax.IsNegative() {
		return nil, NewInvalidArgumentError("tax must not be negative", WithErrorCode(NegativeAmount), WithOffendingParam("tax"))
	}
	if shipping.IsNegative() {
		return nil, NewInvalidArgumentError("shipping must not be negative", WithErrorCode(NegativeAmount), WithOffendingParam("shipping"))
	}

	lines := make([]SummaryLine, 0, len(items)+3)
	total := decimal.Zero
	for i, item := range items {
		if item.Price.IsNegative() {
			param := "items[" + strconv.Itoa(i) + "].price"
			return nil, NewInvalidArgumentError("item price must not be negative", WithErrorCode(NegativeAmount), WithOffendingParam(param))
		}
		lines = append(lines, SummaryLine{Label: item.Name, Amount: item.Price})
		total = total.Add(item.Price)
	}
	if tax.IsPositive() {
		lines = append(lines, SummaryLine{Label: LabelTax, Amount: tax})
		total = total.Add(tax)
	}
	if shipping.IsPositive() {
		lines = append(lines, SummaryLine{Label: LabelShipping, Amount: shipping})
		total = total.Add(shipping)
	}
	lines = append(lines, SummaryLine{Label: LabelTotal, Amount: total})
	return lines, nil
}

// SummaryTotal returns the amount of the closing Total row, or decimal.Zero
// when lines is empty.
func SummaryTotal(lines []SummaryLine) decimal.Decimal {
	if len(lines) == 0 {
		return decimal.Zero
	}
	return lines[len(lines)-1].Amount
}
