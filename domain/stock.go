package domain

// A Stock is a row of the market listing.
type Stock struct {
	Symbol string  `json:"symbol" validate:"required"`
	Name   string  `json:"name"`
	Price  float64 `json:"price" validate:"gte=0"`
	Change Percent `json:"change"`
}

// A StockDetail is a Stock with its market statistics.
type StockDetail struct {
	Stock
	Volume        int64   `json:"volume" validate:"gte=0"`
	MarketCap     float64 `json:"market_cap" validate:"gte=0"`
	PERatio       float64 `json:"pe_ratio"`
	DividendYield Percent `json:"dividend_yield"`
}

// A HistoryPoint is a stock's closing price on a date.
type HistoryPoint struct {
	Date   string  `json:"date" validate:"required"`
	Price  float64 `json:"price" validate:"gte=0"`
	Volume int64   `json:"volume" validate:"gte=0"`
}

// CompanyInfo is descriptive metadata about the company behind a symbol.
type CompanyInfo struct {
	Symbol       string `json:"symbol" validate:"required"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Sector       string `json:"sector"`
	Industry     string `json:"industry"`
	Employees    int    `json:"employees"`
	Headquarters string `json:"headquarters"`
	Founded      string `json:"founded,omitempty"`
	CEO          string `json:"ceo"`
	Website      string `json:"website"`
}

// A Recommendation is the backend's generated trading advice for a symbol.
//
// Confidence is a fraction in [0, 1].
type Recommendation struct {
	Symbol         string  `json:"symbol" validate:"required"`
	Name           string  `json:"name"`
	Recommendation string  `json:"recommendation" validate:"required"`
	Confidence     float64 `json:"confidence" validate:"gte=0,lte=1"`
	Analysis       string  `json:"analysis"`
}

// ConfidencePercent returns Confidence as a Percent.
func (r Recommendation) ConfidencePercent() Percent { return Percent(r.Confidence) }
