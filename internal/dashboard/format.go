package dashboard

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	rupee = "₹"
	lakh  = 100000
)

var lakhDivisor = decimal.NewFromInt(lakh)

// FormatCurrency renders an amount in rupees: lakhs with one decimal from
// 1,00,000 up, Indian digit grouping below that.
func FormatCurrency(v float64) string {
	d := decimal.NewFromFloat(v)
	if v >= lakh {
		return rupee + d.Div(lakhDivisor).StringFixed(1) + "L"
	}
	return rupee + groupIndian(d.Round(2))
}

// FormatTableCurrency is the denser table variant: lakhs with two decimals,
// grouping from 1,000, and two fixed decimals for small amounts. Zero is "₹0".
func FormatTableCurrency(v float64) string {
	d := decimal.NewFromFloat(v)
	switch {
	case v == 0:
		return rupee + "0"
	case v >= lakh:
		return rupee + d.Div(lakhDivisor).StringFixed(2) + "L"
	case v >= 1000:
		return rupee + groupIndian(d.Round(2))
	default:
		return rupee + d.StringFixed(2)
	}
}

// FormatNumber renders a plain quantity with Indian digit grouping and at
// most two decimals.
func FormatNumber(v float64) string {
	return groupIndian(decimal.NewFromFloat(v).Round(2))
}

// FormatChange renders a period-over-period delta as a signed percentage
// with one decimal.
func FormatChange(change float64) string {
	d := decimal.NewFromFloat(change).Round(1)
	if d.IsNegative() {
		return "-" + d.Abs().StringFixed(1) + "%"
	}
	return "+" + d.StringFixed(1) + "%"
}

// groupIndian formats d with the last three integer digits grouped, then
// groups of two: 12,34,567.89.
func groupIndian(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	whole, frac, _ := strings.Cut(d.String(), ".")

	var b strings.Builder
	b.WriteString(sign)
	if len(whole) <= 3 {
		b.WriteString(whole)
	} else {
		head, tail := whole[:len(whole)-3], whole[len(whole)-3:]
		lead := len(head) % 2
		if lead > 0 {
			b.WriteString(head[:lead])
		}
		for i := lead; i < len(head); i += 2 {
			if b.Len() > len(sign) {
				b.WriteByte(',')
			}
			b.WriteString(head[i : i+2])
		}
		b.WriteByte(',')
		b.WriteString(tail)
	}
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

// FormatTotal renders a card total: currency for currency cards, a plain
// number otherwise.
func FormatTotal(card Card, v float64) string {
	if card.Currency() {
		return FormatCurrency(v)
	}
	return FormatNumber(v)
}
