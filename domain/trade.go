package domain

import (
	"fmt"

	stocksage "github.com/hvpham-yorku/StockSage-AI"
)

// A TradeType is the side of a transaction.
type TradeType string

const (
	Buy  TradeType = "buy"
	Sell TradeType = "sell"
)

var _ stocksage.Enumerable = Buy

func (t TradeType) String() string { return string(t) }

func (t TradeType) Valid() error {
	switch t {
	case Buy, Sell:
		return nil
	default:
		return fmt.Errorf("%w: TradeType %q", stocksage.ErrNotValid, string(t))
	}
}

// A TradeRequest buys or sells Quantity shares of Symbol on Date.
//
// A zero Price lets the backend use the historical price on Date.
type TradeRequest struct {
	Symbol   string  `json:"symbol" validate:"required,max=10"`
	Quantity int     `json:"quantity" validate:"gt=0"`
	Price    float64 `json:"price,omitempty" validate:"gte=0"`
	Date     string  `json:"date" validate:"required,datetime=2006-01-02"`
}

// A Transaction is an executed trade.
type Transaction struct {
	ID              string    `json:"id"`
	PortfolioID     string    `json:"portfolio_id"`
	Symbol          string    `json:"symbol" validate:"required"`
	Name            string    `json:"name"`
	Type            TradeType `json:"type" validate:"oneof=buy sell"`
	Quantity        int       `json:"quantity" validate:"gt=0"`
	Price           float64   `json:"price" validate:"gte=0"`
	Total           float64   `json:"total"`
	TradeDate       string    `json:"trade_date"`
	Timestamp       string    `json:"timestamp"`
	NewBalance      float64   `json:"new_balance"`
	GainLoss        *float64  `json:"gain_loss,omitempty"`
	GainLossPercent *Percent  `json:"gain_loss_percent,omitempty"`
}
