package renderer

import (
	"time"

	"github.com/etnz/coinfolio/coingecko"
)

// coinView is the data of the coin templates, with figures in one currency.
type coinView struct {
	coingecko.CoinDetail
	Currency  string
	Price     float64
	MarketCap float64
	Volume    float64
	High24h   float64
	Low24h    float64
	ATH       float64
	ATHDate   time.Time
	ATL       float64
	ATLDate   time.Time
	About     string
	Favorite  bool
}

// CoinDetail renders the detail of a coin, with figures in currency.
func CoinDetail(d coingecko.CoinDetail, currency string, favorite bool) string {
	md := d.MarketData
	v := coinView{
		CoinDetail: d,
		Currency:   currency,
		Price:      md.CurrentPrice[currency],
		MarketCap:  md.MarketCap[currency],
		Volume:     md.TotalVolume[currency],
		High24h:    md.High24h[currency],
		Low24h:     md.Low24h[currency],
		ATH:        md.ATH[currency],
		ATHDate:    md.ATHDate[currency],
		ATL:        md.ATL[currency],
		ATLDate:    md.ATLDate[currency],
		About:      d.Summary(),
		Favorite:   favorite,
	}
	partials := map[string]string{
		"coin_title":  "coin_title.md",
		"coin_market": "coin_market.md",
		"coin_supply": "coin_supply.md",
	}
	return renderTemplate("coin", "coin.md", partials, v)
}
