package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	stocksage "github.com/hvpham-yorku/StockSage-AI"
)

// A PortfolioCreate opens a simulated portfolio funded with InitialBalance on StartDate.
type PortfolioCreate struct {
	Name            string  `json:"name" schema:"name" validate:"required,max=100"`
	StartDate       string  `json:"start_date" schema:"start_date" validate:"required,datetime=2006-01-02"`
	InitialBalance  float64 `json:"initial_balance" schema:"initial_balance" validate:"gt=0"`
	SimulationSpeed int     `json:"simulation_speed,omitempty" schema:"simulation_speed" validate:"gte=0"`
}

// A PortfolioUpdate renames a portfolio or changes its simulation speed.
type PortfolioUpdate struct {
	Name            string `json:"name,omitempty" schema:"name" validate:"omitempty,max=100"`
	SimulationSpeed int    `json:"simulation_speed,omitempty" schema:"simulation_speed" validate:"gte=0"`
}

// A Portfolio is a simulated account.
//
// Listing portfolios returns only the summary fields;
// fetching one by ID fills in the rest.
type Portfolio struct {
	ID              string   `json:"id" validate:"required"`
	Name            string   `json:"name"`
	StartDate       string   `json:"start_date"`
	InitialBalance  float64  `json:"initial_balance"`
	CurrentBalance  float64  `json:"current_balance"`
	Performance     Percent  `json:"performance"`
	CurrentDate     string   `json:"current_date,omitempty"`
	IsActive        bool     `json:"is_active,omitempty"`
	UserID          string   `json:"user_id,omitempty"`
	CashBalance     float64  `json:"cash_balance,omitempty"`
	Holdings        Holdings `json:"holdings,omitempty" validate:"dive"`
	CreatedAt       string   `json:"created_at,omitempty"`
	SimulationSpeed int      `json:"simulation_speed,omitempty"`
}

// A Holding is a position in one symbol.
type Holding struct {
	Symbol          string  `json:"symbol" validate:"required"`
	Name            string  `json:"name"`
	Quantity        int     `json:"quantity" validate:"gte=0"`
	AverageBuyPrice float64 `json:"average_buy_price"`
	CurrentPrice    float64 `json:"current_price"`
	Value           float64 `json:"value"`
	GainLoss        float64 `json:"gain_loss"`
	GainLossPercent Percent `json:"gain_loss_percent"`
}

// Holdings are a portfolio's positions.
//
// The backend has sent holdings both as a list and as an object keyed by symbol;
// Holdings accepts either and is always a list ordered as received, or by symbol
// when decoded from an object.
type Holdings []Holding

// UnmarshalJSON implements json.Unmarshaler.
func (h *Holdings) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0, bytes.Equal(b, []byte("null")):
		*h = nil
		return nil
	case b[0] == '[':
		var list []Holding
		if err := json.Unmarshal(b, &list); err != nil {
			return err
		}
		*h = list
		return nil
	case b[0] == '{':
		keyed := make(map[string]Holding)
		if err := json.Unmarshal(b, &keyed); err != nil {
			return err
		}

		list := make([]Holding, 0, len(keyed))
		for symbol, holding := range keyed {
			if holding.Symbol == "" {
				holding.Symbol = symbol
			}
			list = append(list, holding)
		}
		sort.Slice(list, func(i, j int) bool { return list[i].Symbol < list[j].Symbol })
		*h = list
		return nil
	default:
		return fmt.Errorf("%w: holdings must be a list or an object", stocksage.ErrNotValid)
	}
}

// Value sums the market value of every position.
func (h Holdings) Value() float64 {
	var sum float64
	for _, holding := range h {
		sum += holding.Value
	}
	return sum
}

// A PerformancePoint is a portfolio's total value on a date.
type PerformancePoint struct {
	Date  string  `json:"date" validate:"required"`
	Value float64 `json:"value"`
}

// Performance is a snapshot of how a portfolio has done since it opened.
type Performance struct {
	PortfolioID        string             `json:"portfolio_id"`
	Name               string             `json:"name"`
	InitialBalance     float64            `json:"initial_balance"`
	CurrentBalance     float64            `json:"current_balance"`
	Performance        Percent            `json:"performance"`
	PerformanceHistory []PerformancePoint `json:"performance_history" validate:"dive"`
	Metrics            PerformanceMetrics `json:"metrics"`
}

// PerformanceMetrics summarize a portfolio's risk and return.
type PerformanceMetrics struct {
	TotalReturn      Percent `json:"total_return"`
	AnnualizedReturn Percent `json:"annualized_return"`
	Volatility       Percent `json:"volatility"`
	SharpeRatio      float64 `json:"sharpe_ratio"`
}

// ComparisonMetrics line up with Comparison.Portfolios by index.
type ComparisonMetrics struct {
	TotalReturn      []Percent `json:"total_return"`
	AnnualizedReturn []Percent `json:"annualized_return"`
	Volatility       []Percent `json:"volatility"`
	SharpeRatio      []float64 `json:"sharpe_ratio"`
}

// A Comparison sets several portfolios side by side.
type Comparison struct {
	Portfolios        []Portfolio       `json:"portfolios"`
	ComparisonMetrics ComparisonMetrics `json:"comparison_metrics"`
}

// A SimulationAction drives a portfolio's simulated clock.
type SimulationAction string

const (
	SimulationStart   SimulationAction = "start"
	SimulationPause   SimulationAction = "pause"
	SimulationReset   SimulationAction = "reset"
	SimulationSetDate SimulationAction = "set_date"
)

var _ stocksage.Enumerable = SimulationStart

func (a SimulationAction) String() string { return string(a) }

func (a SimulationAction) Valid() error {
	switch a {
	case SimulationStart, SimulationPause, SimulationReset, SimulationSetDate:
		return nil
	default:
		return fmt.Errorf("%w: SimulationAction %q", stocksage.ErrNotValid, string(a))
	}
}

// A SimulationControl starts, pauses, resets or moves a portfolio's simulated clock.
//
// TargetDate is required by SimulationSetDate.
type SimulationControl struct {
	Action          SimulationAction `json:"action" schema:"action" validate:"required,oneof=start pause reset set_date"`
	TargetDate      string           `json:"target_date,omitempty" schema:"target_date" validate:"required_if=Action set_date"`
	SimulationSpeed int              `json:"simulation_speed,omitempty" schema:"simulation_speed" validate:"gte=0"`
}

// A SimulationStatus reports where a portfolio's simulated clock stands.
type SimulationStatus struct {
	ID              string `json:"id"`
	Message         string `json:"message,omitempty"`
	CurrentDate     string `json:"current_date,omitempty"`
	IsActive        bool   `json:"is_active"`
	SimulationSpeed int    `json:"simulation_speed,omitempty"`
}
