package coingecko

import (
	"encoding/json"
	"testing"

	"github.com/etnz/coinfolio"
	"github.com/etnz/coinfolio/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(v float64) *float64 { return &v }

func sample() []Coin {
	return []Coin{
		{ID: "bitcoin", Symbol: "btc", Name: "Bitcoin", MarketCapRank: 1, CurrentPrice: price(45000), MarketCap: 9e11, TotalVolume: 3e10, PriceChangePercentage24h: 2.5},
		{ID: "ethereum", Symbol: "eth", Name: "Ethereum", MarketCapRank: 2, CurrentPrice: price(2400), MarketCap: 3e11, TotalVolume: 2e10, PriceChangePercentage24h: -1.2},
		{ID: "pepe", Symbol: "pepe", Name: "Pepe", MarketCapRank: 30, CurrentPrice: price(0.00001), MarketCap: 5e9, TotalVolume: 4e10, PriceChangePercentage24h: 15.3},
		{ID: "wrapped-bitcoin", Symbol: "wbtc", Name: "Wrapped Bitcoin", MarketCapRank: 15, CurrentPrice: price(44900), MarketCap: 1e10, TotalVolume: 1e8, PriceChangePercentage24h: 10},
	}
}

func ids(coins []Coin) []string {
	res := make([]string, 0, len(coins))
	for _, c := range coins {
		res = append(res, c.ID)
	}
	return res
}

func TestFilter(t *testing.T) {
	assert.Equal(t, []string{"bitcoin", "wrapped-bitcoin"}, ids(Filter(sample(), "BitCoin")))
	assert.Equal(t, []string{"ethereum"}, ids(Filter(sample(), "ETH")))
	assert.Equal(t, []string{"bitcoin", "wrapped-bitcoin"}, ids(Filter(sample(), "btc")))
	assert.Len(t, Filter(sample(), ""), 4)
	assert.Empty(t, Filter(sample(), "doge"))
}

func TestSortCoins(t *testing.T) {
	testCases := []struct {
		key  string
		desc bool
		want []string
	}{
		{ByRank, false, []string{"bitcoin", "ethereum", "wrapped-bitcoin", "pepe"}},
		{ByPrice, true, []string{"bitcoin", "wrapped-bitcoin", "ethereum", "pepe"}},
		{ByChange, true, []string{"pepe", "wrapped-bitcoin", "bitcoin", "ethereum"}},
		{ByMarketCap, false, []string{"pepe", "wrapped-bitcoin", "ethereum", "bitcoin"}},
		{ByVolume, true, []string{"pepe", "bitcoin", "ethereum", "wrapped-bitcoin"}},
	}
	for _, tc := range testCases {
		t.Run(tc.key, func(t *testing.T) {
			coins := sample()
			require.NoError(t, SortCoins(coins, tc.key, tc.desc))
			assert.Equal(t, tc.want, ids(coins))
		})
	}
	assert.Error(t, SortCoins(sample(), "name", false))
}

func TestOnlyFavorites(t *testing.T) {
	favs := coinfolio.NewFavorites("pepe", "bitcoin", "dogecoin")
	assert.Equal(t, []string{"bitcoin", "pepe"}, ids(OnlyFavorites(sample(), favs)))
}

func TestHot(t *testing.T) {
	// strictly above the threshold.
	assert.Equal(t, 1, Hot(sample(), HotThreshold))
	assert.Equal(t, 3, Hot(sample(), 0))
}

func TestFind(t *testing.T) {
	c, ok := Find(sample(), "ethereum")
	require.True(t, ok)
	assert.Equal(t, "Ethereum", c.Name)
	_, ok = Find(sample(), "doge")
	assert.False(t, ok)
}

func TestPricesOf_NullPrice(t *testing.T) {
	var coins []Coin
	require.NoError(t, json.Unmarshal([]byte(`[{"id":"deadcoin","current_price":null},{"id":"bitcoin","current_price":45000}]`), &coins))

	prices := PricesOf(coins, "usd")
	_, ok := prices.Price("deadcoin")
	assert.False(t, ok, "a null price must be unknown")
	p, ok := prices.Price("bitcoin")
	assert.True(t, ok)
	assert.True(t, p.Equal(coinfolio.M(45000, "usd")), "bitcoin price = %v", p)

	holdings := coinfolio.NewHoldings([]coinfolio.Transaction{
		coinfolio.NewTransaction(date.MustParse("2025-01-01"), coinfolio.Buy, "deadcoin", "Dead", "dead", coinfolio.Q(10), coinfolio.M(1, "usd")),
	}, prices)
	assert.False(t, holdings[0].Priced())
}
