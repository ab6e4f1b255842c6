package internal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
)

const MaxBasketItems = 3

// BasketItem.Amount is invalid when the request left it out or sent null.
// An explicit zero is a valid amount.
type BasketItem struct {
	Currency CurrencyCode        `json:"currency"`
	Amount   decimal.NullDecimal `json:"amount"`
}

// Basket may repeat a currency; repeated entries are summed.
type Basket struct {
	Base  CurrencyCode `json:"base"`
	Items []BasketItem `json:"items"`
}

func (b Basket) Validate() error {
	if b.Base == "" {
		return invalidInput("base currency is required")
	}
	if len(b.Items) == 0 {
		return invalidInput("basket is empty")
	}
	if len(b.Items) > MaxBasketItems {
		return invalidInput("basket holds at most %d currencies, got %d", MaxBasketItems, len(b.Items))
	}
	for i, it := range b.Items {
		if it.Currency == "" {
			return invalidInput("currency %d is empty", i+1)
		}
		if !it.Amount.Valid {
			return invalidInput("amount for %s is missing", it.Currency)
		}
		if it.Amount.Decimal.IsNegative() {
			return invalidInput("amount for %s must not be negative", it.Currency)
		}
	}
	return nil
}

type BasketValuation struct {
	Base    CurrencyCode    `json:"base"`
	Value   decimal.Decimal `json:"value"`
	Skipped []CurrencyCode  `json:"skipped,omitempty"`
}

func (v BasketValuation) Summary() string {
	return fmt.Sprintf("The value of the basket in %s is: %s", v.Base, v.Value.StringFixed(2))
}

// ValueBasket sums amount*rate over the basket. Items whose currency has no
// rate contribute nothing and are listed in Skipped.
func ValueBasket(basket Basket, rates map[CurrencyCode]decimal.Decimal) BasketValuation {
	out := BasketValuation{Base: basket.Base, Value: decimal.Zero}
	for _, it := range basket.Items {
		rate, ok := rates[it.Currency]
		if !ok {
			out.Skipped = append(out.Skipped, it.Currency)
			continue
		}
		out.Value = out.Value.Add(it.Amount.Decimal.Mul(rate))
	}
	return out
}

type BasketValuator struct {
	source RateSource
	log    *slog.Logger
}

func NewBasketValuator(source RateSource, log *slog.Logger) *BasketValuator {
	if log == nil {
		log = slog.Default()
	}
	return &BasketValuator{source: source, log: log}
}

// Value fetches the latest rates for the basket base and values the basket.
func (v *BasketValuator) Value(ctx context.Context, basket Basket) (BasketValuation, error) {
	if err := basket.Validate(); err != nil {
		return BasketValuation{}, err
	}

	rates, err := v.source.Rates(ctx, basket.Base, Date{})
	if err != nil {
		return BasketValuation{}, fmt.Errorf("rates for %s: %w", basket.Base, err)
	}

	out := ValueBasket(basket, rates)
	for _, code := range out.Skipped {
		v.log.WarnContext(ctx, "exchange rate not found, skipping basket item",
			slog.String("currency", code.String()),
			slog.String("base", basket.Base.String()),
		)
	}
	return out, nil
}
