package coinfolio

// PortfolioValue is the value of the whole portfolio at current prices.
type PortfolioValue struct {
	TotalValue       Money
	TotalInvested    Money
	Profit           Money
	ProfitPercentage Percent // 0 when nothing is invested.
}

// Equal reports whether v and o hold the same values.
func (v PortfolioValue) Equal(o PortfolioValue) bool {
	return v.TotalValue.Equal(o.TotalValue) && v.TotalInvested.Equal(o.TotalInvested) &&
		v.Profit.Equal(o.Profit) && v.ProfitPercentage.Equal(o.ProfitPercentage)
}

// NewPortfolioValue values every transaction whose coin price is known.
//
// Transactions of coins with an unknown price contribute neither to the
// value nor to the invested amount. Neither do transactions priced in
// another currency than their coin price, or than the first transaction
// valued: amounts are never converted.
func NewPortfolioValue(txs []Transaction, prices PriceOracle) PortfolioValue {
	var v PortfolioValue
	var q quote
	for _, tx := range txs {
		price, ok := lookup(prices, tx.CoinID)
		if !ok || !sameCurrency(price, tx.BuyPrice) || !q.accepts(cur(price, tx.BuyPrice)) {
			continue
		}
		v.TotalValue = v.TotalValue.Add(price.Mul(tx.Amount))
		v.TotalInvested = v.TotalInvested.Add(tx.Cost())
	}
	return v.settle()
}

// SumHoldings computes the portfolio value from priced holdings.
//
// With holdings computed by NewHoldings it agrees with NewPortfolioValue on
// the same transactions and prices. Holdings in another currency than the
// first priced one are left out.
func SumHoldings(holdings []Holding) PortfolioValue {
	var v PortfolioValue
	var q quote
	for _, h := range holdings {
		if h.Valuation == nil || !q.accepts(h.currency()) {
			continue
		}
		v.TotalValue = v.TotalValue.Add(h.Valuation.CurrentValue)
		v.TotalInvested = v.TotalInvested.Add(h.TotalInvested)
	}
	return v.settle()
}

// settle computes the profit fields from the totals.
func (v PortfolioValue) settle() PortfolioValue {
	v.Profit = v.TotalValue.Sub(v.TotalInvested)
	if v.TotalInvested.IsPositive() {
		v.ProfitPercentage = percentOf(v.Profit, v.TotalInvested)
	}
	return v
}

// quote is the currency of a total: the first currency accepted. Amounts
// without currency are always accepted.
type quote string

func (q *quote) accepts(currency string) bool {
	switch {
	case currency == "" || string(*q) == currency:
		return true
	case *q == "":
		*q = quote(currency)
		return true
	}
	return false
}
