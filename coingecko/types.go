package coingecko

import (
	"strings"
	"time"
)

// Coin is a row of the markets list.
type Coin struct {
	ID                       string   `json:"id"`
	Symbol                   string   `json:"symbol"`
	Name                     string   `json:"name"`
	Image                    string   `json:"image"`
	CurrentPrice             *float64 `json:"current_price"` // nil when the coin has no price
	MarketCap                float64  `json:"market_cap"`
	MarketCapRank            int      `json:"market_cap_rank"`
	TotalVolume              float64  `json:"total_volume"`
	High24h                  float64  `json:"high_24h"`
	Low24h                   float64  `json:"low_24h"`
	PriceChange24h           float64  `json:"price_change_24h"`
	PriceChangePercentage24h float64  `json:"price_change_percentage_24h"`
	CirculatingSupply        float64  `json:"circulating_supply"`
	Sparkline                struct {
		Price []float64 `json:"price"`
	} `json:"sparkline_in_7d"`
}

// Price returns the current price of c, and false when it has none.
func (c Coin) Price() (float64, bool) {
	if c.CurrentPrice == nil {
		return 0, false
	}
	return *c.CurrentPrice, true
}

// CoinDetail is the full description of a coin.
type CoinDetail struct {
	ID            string            `json:"id"`
	Symbol        string            `json:"symbol"`
	Name          string            `json:"name"`
	MarketCapRank int               `json:"market_cap_rank"`
	Description   map[string]string `json:"description"`
	MarketData    MarketData        `json:"market_data"`
}

// MarketData holds the figures of a coin, most of them keyed by lower case
// quote currency.
type MarketData struct {
	CurrentPrice             map[string]float64   `json:"current_price"`
	MarketCap                map[string]float64   `json:"market_cap"`
	TotalVolume              map[string]float64   `json:"total_volume"`
	High24h                  map[string]float64   `json:"high_24h"`
	Low24h                   map[string]float64   `json:"low_24h"`
	ATH                      map[string]float64   `json:"ath"`
	ATHDate                  map[string]time.Time `json:"ath_date"`
	ATL                      map[string]float64   `json:"atl"`
	ATLDate                  map[string]time.Time `json:"atl_date"`
	PriceChangePercentage24h float64              `json:"price_change_percentage_24h"`
	PriceChangePercentage7d  float64              `json:"price_change_percentage_7d"`
	PriceChangePercentage30d float64              `json:"price_change_percentage_30d"`
	PriceChangePercentage1y  float64              `json:"price_change_percentage_1y"`
	CirculatingSupply        float64              `json:"circulating_supply"`
	TotalSupply              *float64             `json:"total_supply"`
	MaxSupply                *float64             `json:"max_supply"`
}

// Summary returns the English description up to its first paragraph.
func (d CoinDetail) Summary() string {
	s := strings.TrimSpace(d.Description["en"])
	if i := strings.Index(s, "\r\n\r\n"); i >= 0 {
		s = s[:i]
	}
	if i := strings.Index(s, "\n\n"); i >= 0 {
		s = s[:i]
	}
	return s
}

// ChartPoint is a price at a given time.
type ChartPoint struct {
	Time  time.Time
	Price float64
}

// Chart is the price history of a coin.
type Chart struct {
	CoinID   string
	Currency string
	Days     int
	Prices   []ChartPoint
}

// Global holds the figures of the whole crypto market.
type Global struct {
	ActiveCryptocurrencies int
	Markets                int
	TotalMarketCap         map[string]float64 // by lower case currency.
	TotalVolume            map[string]float64 // by lower case currency.
	MarketCapPercentage    map[string]float64 // dominance by coin symbol.
	MarketCapChange24h     float64            // in percent, quoted in usd.
}

// TrendingCoin is a coin of the trending search list.
type TrendingCoin struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Symbol        string  `json:"symbol"`
	MarketCapRank int     `json:"market_cap_rank"`
	Score         int     `json:"score"`
	PriceBTC      float64 `json:"price_btc"`
}
