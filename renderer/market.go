package renderer

import (
	"fmt"

	"github.com/etnz/coinfolio"
	"github.com/etnz/coinfolio/coingecko"
)

// sparkWidth is the number of bars of the 7 days sparkline.
const sparkWidth = 16

// Markets renders the markets table. Favorite coins are starred.
func Markets(coins []coingecko.Coin, currency string, favorites *coinfolio.Favorites) string {
	var r mdRenderer
	if len(coins) == 0 {
		r.Printf("No coins found.\n")
		return r.String()
	}
	r.Row("#", "Coin", "Price", "24h", "Market Cap", "Volume", "7d")
	r.Row(":--", ":---", "---:", "---:", "---:", "---:", ":---")
	for _, c := range coins {
		name := fmt.Sprintf("%s (%s)", escape(c.Name), escape(c.Symbol))
		if favorites != nil && favorites.Has(c.ID) {
			name = "★ " + name
		}
		r.Row(
			fmt.Sprint(c.MarketCapRank),
			name,
			coinPrice(c, currency),
			Percentage(c.PriceChangePercentage24h),
			MarketCap(c.MarketCap, currency),
			Volume(c.TotalVolume, currency),
			Sparkline(c.Sparkline.Price, sparkWidth),
		)
	}
	return r.String()
}

// GlobalHeader renders the market overview line.
func GlobalHeader(g coingecko.Global, currency string, hot int) string {
	var r mdRenderer
	r.Printf("**Market Cap:** %s (%s) · **24h Vol:** %s · **BTC Dominance:** %.1f%% · **ETH Dominance:** %.1f%% · **Coins:** %s",
		MarketCap(g.TotalMarketCap[currency], currency),
		Percentage(g.MarketCapChange24h),
		Volume(g.TotalVolume[currency], currency),
		g.MarketCapPercentage["btc"],
		g.MarketCapPercentage["eth"],
		Number(float64(g.ActiveCryptocurrencies)),
	)
	if hot >= 0 {
		r.Printf(" · **Hot:** %d", hot)
	}
	r.Printf("\n\n")
	return r.String()
}

// Trending renders the trending coins.
func Trending(coins []coingecko.TrendingCoin) string {
	var r mdRenderer
	r.Printf("# Trending\n\n")
	if len(coins) == 0 {
		r.Printf("Nothing is trending.\n")
		return r.String()
	}
	r.Row("#", "Coin", "ID", "Rank", "Price (BTC)")
	r.Row(":--", ":---", ":---", "---:", "---:")
	for i, c := range coins {
		r.Row(
			fmt.Sprint(i+1),
			fmt.Sprintf("%s (%s)", escape(c.Name), escape(c.Symbol)),
			c.ID,
			fmt.Sprint(c.MarketCapRank),
			fmt.Sprintf("%.10f", c.PriceBTC),
		)
	}
	return r.String()
}

// Favorites renders the favorite coins with their market data when known.
func Favorites(favorites *coinfolio.Favorites, coins []coingecko.Coin, currency string) string {
	var r mdRenderer
	r.Printf("# Favorites\n\n")
	if favorites.Len() == 0 {
		r.Printf("No favorites yet, add one with `coins fav add <id>`.\n")
		return r.String()
	}
	r.Row("Coin", "Price", "24h")
	r.Row(":---", "---:", "---:")
	for _, id := range favorites.IDs() {
		c, ok := coingecko.Find(coins, id)
		if !ok {
			r.Row(id, "n/a", "n/a")
			continue
		}
		r.Row(fmt.Sprintf("%s (%s)", escape(c.Name), escape(c.Symbol)), coinPrice(c, currency), Percentage(c.PriceChangePercentage24h))
	}
	return r.String()
}

// coinPrice formats the current price of c, or "n/a".
func coinPrice(c coingecko.Coin, currency string) string {
	p, ok := c.Price()
	if !ok {
		return "n/a"
	}
	return Price(p, currency)
}
