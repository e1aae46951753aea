package renderer

import (
	"time"

	"github.com/etnz/coinfolio/coingecko"
)

// chartRows is the maximum number of rows of the chart price table.
const chartRows = 12

// ChartLabel formats t for a chart covering days: hours for one day, days up
// to a month, months beyond.
func ChartLabel(t time.Time, days int) string {
	switch {
	case days <= 1:
		return t.Format("15:04")
	case days <= 30:
		return t.Format("Jan 2")
	default:
		return t.Format("Jan 06")
	}
}

// Chart renders the price history of a coin.
func Chart(c coingecko.Chart) string {
	var r mdRenderer
	r.Printf("# %s, last %d days\n\n", c.CoinID, c.Days)
	if len(c.Prices) == 0 {
		r.Printf("No price data.\n")
		return r.String()
	}

	values := make([]float64, len(c.Prices))
	for i, p := range c.Prices {
		values[i] = p.Price
	}
	first, last := values[0], values[len(values)-1]
	lo, hi := first, first
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	change := 0.0
	if first != 0 {
		change = (last - first) / first * 100
	}

	r.Printf("`%s`\n\n", Sparkline(values, 60))
	r.Row("Open", "Close", "Low", "High", "Change")
	r.Row("---:", "---:", "---:", "---:", "---:")
	r.Row(Price(first, c.Currency), Price(last, c.Currency), Price(lo, c.Currency), Price(hi, c.Currency), Percentage(change))
	r.Printf("\n")

	r.Row("Time", "Price")
	r.Row(":---", "---:")
	for _, p := range sample(c.Prices, chartRows) {
		r.Row(ChartLabel(p.Time, c.Days), Price(p.Price, c.Currency))
	}
	return r.String()
}

// sample returns at most n points evenly spread over points, always
// keeping the last one.
func sample(points []coingecko.ChartPoint, n int) []coingecko.ChartPoint {
	if len(points) <= n {
		return points
	}
	res := make([]coingecko.ChartPoint, 0, n)
	for i := range n - 1 {
		res = append(res, points[i*(len(points)-1)/(n-1)])
	}
	return append(res, points[len(points)-1])
}
