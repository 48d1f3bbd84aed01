package cart

import (
	"github.com/Manmohan01-cloud/NaturalHealthShopApp/internal/domain"
	"github.com/shopspring/decimal"
)

// FlatShippingFee is charged once per order when the subtotal is positive.
var FlatShippingFee = decimal.NewFromInt(50)

type Totals struct {
	ItemCount   int
	Subtotal    decimal.Decimal
	ShippingFee decimal.Decimal
	Total       decimal.Decimal
}

func ItemCount(c domain.Cart) int {
	n := 0
	for _, line := range c {
		n += line.Quantity
	}
	return n
}

func Subtotal(c domain.Cart) decimal.Decimal {
	sum := decimal.Zero
	for _, line := range c {
		sum = sum.Add(decimal.NewFromFloat(line.Price).Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return sum
}

func ShippingFee(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.IsPositive() {
		return FlatShippingFee
	}
	return decimal.Zero
}

func ComputeTotals(c domain.Cart) Totals {
	subtotal := Subtotal(c)
	fee := ShippingFee(subtotal)
	return Totals{
		ItemCount:   ItemCount(c),
		Subtotal:    subtotal,
		ShippingFee: fee,
		Total:       subtotal.Add(fee),
	}
}
