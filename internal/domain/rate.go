package domain

// RateQuote is a resolved exchange rate against NPR. All rate fields are
// already divided by the upstream quoting unit, so they read "per 1 unit of
// foreign currency".
type RateQuote struct {
	Rate     float64 `json:"rate"`
	Currency string  `json:"currency"`
	Source   string  `json:"source"`
	Date     string  `json:"date"`
	Buy      float64 `json:"buy,omitempty"`
	Sell     float64 `json:"sell,omitempty"`
	Unit     int     `json:"unit,omitempty"`
	Cached   bool    `json:"cached"`
	Fallback bool    `json:"fallback,omitempty"`
	Err      string  `json:"error,omitempty"`
}
