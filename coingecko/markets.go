package coingecko

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/coinfolio"
)

// HotThreshold is the 24h change, in percent, above which a coin is hot.
const HotThreshold = 10

// Sort keys accepted by SortCoins.
const (
	ByRank      = "rank"
	ByPrice     = "price"
	ByChange    = "change"
	ByMarketCap = "marketcap"
	ByVolume    = "volume"
)

// SortKeys lists the keys accepted by SortCoins.
var SortKeys = []string{ByRank, ByPrice, ByChange, ByMarketCap, ByVolume}

// Prices returns the current prices of the first markets page as a price
// oracle. Prices are quoted in currency.
func (c *Client) Prices(ctx context.Context, currency string) (coinfolio.Prices, error) {
	coins, err := c.Markets(ctx, currency, 1)
	if err != nil {
		return nil, fmt.Errorf("cannot fetch current prices: %w", err)
	}
	return PricesOf(coins, currency), nil
}

// PricesOf returns the current prices of coins, in currency. Coins without
// a price are left out, their price is unknown.
func PricesOf(coins []Coin, currency string) coinfolio.Prices {
	prices := make(coinfolio.Prices, len(coins))
	for _, c := range coins {
		if p, ok := c.Price(); ok {
			prices[c.ID] = coinfolio.M(p, currency)
		}
	}
	return prices
}

// Find returns the coin with this id.
func Find(coins []Coin, id string) (Coin, bool) {
	i := slices.IndexFunc(coins, func(c Coin) bool { return c.ID == id })
	if i < 0 {
		return Coin{}, false
	}
	return coins[i], true
}

// Filter returns the coins whose name or symbol contains term, ignoring case.
// An empty term keeps all the coins.
func Filter(coins []Coin, term string) []Coin {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return slices.Clone(coins)
	}
	res := make([]Coin, 0)
	for _, c := range coins {
		if strings.Contains(strings.ToLower(c.Name), term) || strings.Contains(strings.ToLower(c.Symbol), term) {
			res = append(res, c)
		}
	}
	return res
}

// OnlyFavorites returns the coins that are favorites.
func OnlyFavorites(coins []Coin, favorites *coinfolio.Favorites) []Coin {
	res := make([]Coin, 0)
	for _, c := range coins {
		if favorites.Has(c.ID) {
			res = append(res, c)
		}
	}
	return res
}

// SortCoins sorts coins in place by key, in ascending order unless desc.
// The sort is stable.
func SortCoins(coins []Coin, key string, desc bool) error {
	var field func(Coin) float64
	switch key {
	case ByRank, "":
		field = func(c Coin) float64 { return float64(c.MarketCapRank) }
	case ByPrice:
		field = func(c Coin) float64 { p, _ := c.Price(); return p }
	case ByChange:
		field = func(c Coin) float64 { return c.PriceChangePercentage24h }
	case ByMarketCap:
		field = func(c Coin) float64 { return c.MarketCap }
	case ByVolume:
		field = func(c Coin) float64 { return c.TotalVolume }
	default:
		return fmt.Errorf("unknown sort key %q, want one of %v", key, SortKeys)
	}
	slices.SortStableFunc(coins, func(a, b Coin) int {
		if desc {
			return cmp.Compare(field(b), field(a))
		}
		return cmp.Compare(field(a), field(b))
	})
	return nil
}

// Hot counts the coins whose 24h change is above threshold percent.
func Hot(coins []Coin, threshold float64) int {
	n := 0
	for _, c := range coins {
		if c.PriceChangePercentage24h > threshold {
			n++
		}
	}
	return n
}
