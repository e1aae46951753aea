package renderer

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/etnz/coinfolio"
	"github.com/etnz/coinfolio/coingecko"
	"github.com/etnz/coinfolio/date"
)

func price(v float64) *float64 { return &v }

func usd(v float64) coinfolio.Money { return coinfolio.M(v, "usd") }

func tx(day string, typ coinfolio.TxType, coin, name, symbol string, amount, price float64) coinfolio.Transaction {
	return coinfolio.NewTransaction(date.MustParse(day), typ, coin, name, symbol, coinfolio.Q(amount), usd(price))
}

// contains fails the test for each want missing from got.
func contains(t *testing.T, got string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(got, want) {
			t.Errorf("output does not contain %q:\n%s", want, got)
		}
	}
}

func TestConditionalBlock(t *testing.T) {
	var buf bytes.Buffer
	ConditionalBlock(&buf, func(w io.Writer) bool {
		io.WriteString(w, "hidden")
		return false
	})
	ConditionalBlock(&buf, func(w io.Writer) bool {
		io.WriteString(w, "shown")
		return true
	})
	if got := buf.String(); got != "shown" {
		t.Errorf("ConditionalBlock() wrote %q, want %q", got, "shown")
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{1, 2, 3, 4, 5, 6, 7, 8}, 8); got != "▁▂▃▄▅▆▇█" {
		t.Errorf("Sparkline() = %q, want %q", got, "▁▂▃▄▅▆▇█")
	}
	if got := Sparkline([]float64{3, 3, 3}, 10); got != "▁▁▁" {
		t.Errorf("Sparkline(flat) = %q, want %q", got, "▁▁▁")
	}
	if got := []rune(Sparkline(make([]float64, 100), 16)); len(got) != 16 {
		t.Errorf("len(Sparkline()) = %d, want 16", len(got))
	}
	if got := Sparkline(nil, 16); got != "" {
		t.Errorf("Sparkline(nil) = %q, want empty", got)
	}
}

func TestMarkets(t *testing.T) {
	coins := []coingecko.Coin{
		{ID: "bitcoin", Symbol: "btc", Name: "Bitcoin", MarketCapRank: 1, CurrentPrice: price(45000), MarketCap: 8.8e11, TotalVolume: 3e10, PriceChangePercentage24h: 2.5},
		{ID: "ethereum", Symbol: "eth", Name: "Ethereum", MarketCapRank: 2, CurrentPrice: price(2400), MarketCap: 2.9e11, TotalVolume: 1.5e10, PriceChangePercentage24h: -1.2},
	}
	got := Markets(coins, "usd", coinfolio.NewFavorites("ethereum"))
	contains(t, got,
		"| 1 | Bitcoin (btc) | $45.00K | +2.50% | $880.00B | $30.00B |",
		"| 2 | ★ Ethereum (eth) | $2.40K | -1.20% | $290.00B | $15.00B |",
	)
	contains(t, Markets(nil, "usd", nil), "No coins found.")

	unpriced := []coingecko.Coin{{ID: "deadcoin", Symbol: "dead", Name: "Dead", MarketCapRank: 9000}}
	contains(t, Markets(unpriced, "usd", nil), "| 9000 | Dead (dead) | n/a |")
}

func TestGlobalHeader(t *testing.T) {
	g := coingecko.Global{
		ActiveCryptocurrencies: 12000,
		TotalMarketCap:         map[string]float64{"eur": 2.3e12},
		TotalVolume:            map[string]float64{"eur": 9e10},
		MarketCapPercentage:    map[string]float64{"btc": 52.14, "eth": 16.9},
		MarketCapChange24h:     -0.8,
	}
	contains(t, GlobalHeader(g, "eur", 3), "€2.30T", "(-0.80%)", "€90.00B", "52.1%", "16.9%", "12,000", "**Hot:** 3")
}

func TestTrending(t *testing.T) {
	got := Trending([]coingecko.TrendingCoin{{ID: "pepe", Name: "Pepe", Symbol: "PEPE", MarketCapRank: 30}})
	contains(t, got, "# Trending", "| 1 | Pepe (PEPE) | pepe | 30 |")
}

func TestFavorites(t *testing.T) {
	coins := []coingecko.Coin{{ID: "bitcoin", Symbol: "btc", Name: "Bitcoin", CurrentPrice: price(45000), PriceChangePercentage24h: 1}}
	got := Favorites(coinfolio.NewFavorites("bitcoin", "obscure"), coins, "usd")
	contains(t, got, "| Bitcoin (btc) | $45.00K | +1.00% |", "| obscure | n/a | n/a |")
	contains(t, Favorites(coinfolio.NewFavorites(), nil, "usd"), "No favorites yet")
}

func TestCoinDetail(t *testing.T) {
	maxSupply := 21000000.0
	d := coingecko.CoinDetail{
		ID: "bitcoin", Symbol: "btc", Name: "Bitcoin", MarketCapRank: 1,
		Description: map[string]string{"en": "Digital gold.\n\nMore."},
		MarketData: coingecko.MarketData{
			CurrentPrice:             map[string]float64{"usd": 45000},
			MarketCap:                map[string]float64{"usd": 8.8e11},
			ATH:                      map[string]float64{"usd": 69000},
			ATHDate:                  map[string]time.Time{"usd": time.Date(2021, 11, 10, 0, 0, 0, 0, time.UTC)},
			PriceChangePercentage24h: 2.5,
			CirculatingSupply:        19500000,
			MaxSupply:                &maxSupply,
		},
	}
	got := CoinDetail(d, "usd", true)
	if strings.HasPrefix(got, "error") {
		t.Fatalf("CoinDetail() = %s", got)
	}
	contains(t, got,
		"# Bitcoin (btc) ★",
		"Rank #1 · $45.00K (+2.50%)",
		"Digital gold.",
		"| Market Cap | $880.00B |",
		"| All Time High | $69.00K on Nov 10, 2021 |",
		"| Circulating | 19,500,000 |",
		"| Total | ∞ |",
		"| Max | 21,000,000 |",
	)
	if strings.Contains(got, "More.") {
		t.Errorf("CoinDetail() should only keep the first paragraph:\n%s", got)
	}
}

func TestChartLabel(t *testing.T) {
	ts := time.Date(2025, 3, 7, 14, 30, 0, 0, time.UTC)
	testCases := []struct {
		days int
		want string
	}{
		{1, "14:30"},
		{7, "Mar 7"},
		{30, "Mar 7"},
		{365, "Mar 25"},
	}
	for _, tc := range testCases {
		if got := ChartLabel(ts, tc.days); got != tc.want {
			t.Errorf("ChartLabel(%d) = %q, want %q", tc.days, got, tc.want)
		}
	}
}

func TestChart(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := coingecko.Chart{CoinID: "bitcoin", Currency: "usd", Days: 30}
	for i := range 30 {
		c.Prices = append(c.Prices, coingecko.ChartPoint{Time: start.AddDate(0, 0, i), Price: 100 + float64(i)})
	}
	got := Chart(c)
	contains(t, got, "# bitcoin, last 30 days", "| $100.00 | $129.00 | $100.00 | $129.00 | +29.00% |", "| Jan 30 | $129.00 |", "| Jan 1 | $100.00 |")
	if rows := strings.Count(got, "\n| Jan"); rows != chartRows {
		t.Errorf("Chart() has %d price rows, want %d", rows, chartRows)
	}
	contains(t, Chart(coingecko.Chart{CoinID: "x", Days: 1}), "No price data.")
}

func TestHoldings(t *testing.T) {
	txs := []coinfolio.Transaction{
		tx("2025-01-01", coinfolio.Buy, "bitcoin", "Bitcoin", "btc", 1, 30000),
		tx("2025-01-02", coinfolio.Buy, "bitcoin", "Bitcoin", "btc", 1, 50000),
		tx("2025-01-03", coinfolio.Buy, "xyz", "Xyz", "xyz", 3, 2),
	}
	holdings := coinfolio.NewHoldings(txs, coinfolio.Prices{"bitcoin": usd(45000)})

	got := Holdings(holdings, "usd", coinfolio.Additive)
	contains(t, got,
		"| Bitcoin (btc) | 2 | $40.00K | $45.00K | $90.00K | +$10.00K | +12.50% |",
		"## Without price",
		"| Xyz (xyz) | 3 | $2.00 | $6.00 |",
	)
	if strings.Contains(got, "Realized") {
		t.Errorf("Holdings(additive) should not show realized profit:\n%s", got)
	}

	avg := Holdings(coinfolio.NewHoldingsWithMethod(txs[:2], coinfolio.Prices{"bitcoin": usd(45000)}, coinfolio.AverageCost), "usd", coinfolio.AverageCost)
	contains(t, avg, "Realized")
	if strings.Contains(avg, "Without price") {
		t.Errorf("Holdings() should skip an empty section:\n%s", avg)
	}

	contains(t, Holdings(nil, "usd", coinfolio.Additive), "No transactions yet")
}

func TestPortfolioSummary(t *testing.T) {
	v := coinfolio.PortfolioValue{TotalValue: usd(105000), TotalInvested: usd(100000), Profit: usd(5000), ProfitPercentage: 5}
	got := PortfolioSummary(v, "usd", 2, 3)
	contains(t, got, "| $105.00K | $100.00K | +$5.00K | +5.00% |", "2 coins, 3 transactions.")
}

func TestAllocation(t *testing.T) {
	entries := []coinfolio.AllocationEntry{
		{CoinID: "bitcoin", CoinName: "Bitcoin", CoinSymbol: "btc", Value: usd(75), Percentage: 75},
		{CoinID: "ethereum", CoinName: "Ethereum", CoinSymbol: "eth", Value: usd(25), Percentage: 25},
	}
	got := Allocation(entries, "usd")
	contains(t, got,
		"| Bitcoin (btc) | $75.00 | 75.00% | "+strings.Repeat("█", 15)+" |",
		"| Ethereum (eth) | $25.00 | 25.00% | "+strings.Repeat("█", 5)+" |",
	)
	contains(t, Allocation(nil, "usd"), "Nothing to allocate.")
}

func TestTransactions(t *testing.T) {
	b := tx("2025-01-10", coinfolio.Buy, "bitcoin", "Bitcoin", "btc", 0.5, 30000)
	b.Memo = "first | dca"
	got := Transactions([]coinfolio.Transaction{b}, "usd")
	contains(t, got, "| 2025-01-10 | buy | Bitcoin (btc) | 0.5 | $30.00K | $15.00K | first \\| dca |", shortID(b.ID))
	contains(t, Transactions(nil, "usd"), "No transactions yet.")
}
