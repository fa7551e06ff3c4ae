package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

func NewMoney(amount decimal.Decimal, unit currency.Unit) Money {
	return Money{Amount: amount, Currency: unit}
}

func (m Money) Mul(qty int32) Money {
	return Money{
		Amount:   m.Amount.Mul(decimal.NewFromInt32(qty)),
		Currency: m.Currency,
	}
}

func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("currency mismatch: %v vs %v", m.Currency, other.Currency)
	}
	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}, nil
}

// Convert applies a fixed exchange rate into the target currency,
// rounded to two decimal places.
func (m Money) Convert(rate decimal.Decimal, unit currency.Unit) Money {
	return Money{
		Amount:   m.Amount.Mul(rate).Round(2),
		Currency: unit,
	}
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Amount.StringFixed(2), m.Currency)
}
