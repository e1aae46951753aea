package coinfolio

import "slices"

// Holding is the aggregated position in one coin across all its transactions
// priced in the same currency.
//
// Holdings are derived values: they are computed from scratch from the
// transaction log and never stored.
type Holding struct {
	CoinID     string
	CoinName   string // from the first transaction of the coin.
	CoinSymbol string // from the first transaction of the coin.

	TotalAmount   Quantity
	TotalInvested Money
	// Realized is the profit realized by sells. It is always zero with the
	// Additive method.
	Realized Money

	// Transactions are the contributing transactions, in insertion order.
	Transactions []Transaction

	// Valuation is nil when the coin price is unknown.
	Valuation *Valuation
}

// Valuation holds the fields of a Holding that depend on the current price.
type Valuation struct {
	CurrentPrice Money
	AvgBuyPrice  Money
	Profit
}

// AvgBuyPrice returns TotalInvested / TotalAmount, and false when the
// position is empty.
func (h Holding) AvgBuyPrice() (Money, bool) {
	if h.TotalAmount.IsZero() {
		return Money{cur: h.TotalInvested.Currency()}, false
	}
	return h.TotalInvested.Div(h.TotalAmount), true
}

// Priced reports whether the coin price is known.
func (h Holding) Priced() bool { return h.Valuation != nil }

// currency returns the currency h is valued in. h must be priced.
func (h Holding) currency() string { return cur(h.Valuation.CurrentValue, h.TotalInvested) }

// Equal reports whether h and o hold the same values.
func (h Holding) Equal(o Holding) bool {
	if h.CoinID != o.CoinID || h.CoinName != o.CoinName || h.CoinSymbol != o.CoinSymbol ||
		!h.TotalAmount.Equal(o.TotalAmount) || !h.TotalInvested.Equal(o.TotalInvested) || !h.Realized.Equal(o.Realized) {
		return false
	}
	if !slices.EqualFunc(h.Transactions, o.Transactions, Transaction.Equal) {
		return false
	}
	if h.Valuation == nil || o.Valuation == nil {
		return h.Valuation == nil && o.Valuation == nil
	}
	return h.Valuation.CurrentPrice.Equal(o.Valuation.CurrentPrice) &&
		h.Valuation.AvgBuyPrice.Equal(o.Valuation.AvgBuyPrice) &&
		h.Valuation.Profit.Equal(o.Valuation.Profit)
}

// NewHoldings aggregates transactions into one Holding per coin, with the
// Additive method: every transaction, buy or sell, adds its amount and cost.
//
// Holdings are returned in the order their coin first appears in txs. A coin
// bought in two currencies gets one Holding per currency.
func NewHoldings(txs []Transaction, prices PriceOracle) []Holding {
	return NewHoldingsWithMethod(txs, prices, Additive)
}

// NewHoldingsWithMethod aggregates transactions into one Holding per coin
// using the given cost basis method to account for sells.
//
// Holdings are returned in the order their coin first appears in txs, and
// each holding keeps its transactions in the order of txs. Holdings whose
// price is unknown to prices, or quoted in another currency than their
// transactions, have a nil Valuation.
func NewHoldingsWithMethod(txs []Transaction, prices PriceOracle, method CostBasisMethod) []Holding {
	type key struct{ coin, currency string }
	// ordered map: holdings is in first-seen order, index maps a key to its position.
	holdings := make([]Holding, 0)
	index := make(map[key]int)
	var openLots []lots // parallel to holdings, FIFO only.

	for _, tx := range txs {
		c := tx.BuyPrice.Currency()
		k := key{tx.CoinID, c}
		i, ok := index[k]
		if !ok {
			i = len(holdings)
			index[k] = i
			holdings = append(holdings, Holding{
				CoinID:        tx.CoinID,
				CoinName:      tx.CoinName,
				CoinSymbol:    tx.CoinSymbol,
				TotalInvested: Money{cur: c},
				Realized:      Money{cur: c},
			})
			openLots = append(openLots, nil)
		}
		h := &holdings[i]
		h.Transactions = append(h.Transactions, tx)

		if tx.Type != Sell || !method.realizes() {
			h.TotalAmount = h.TotalAmount.Add(tx.Amount)
			h.TotalInvested = h.TotalInvested.Add(tx.Cost())
			if method == FIFO {
				openLots[i] = append(openLots[i], lot{Date: tx.Date, Quantity: tx.Amount, Cost: tx.Cost()})
			}
			continue
		}

		// A sell cannot dispose of more than what is held.
		sold := minQ(tx.Amount, h.TotalAmount)
		var costOfSold Money
		switch method {
		case FIFO:
			costOfSold = openLots[i].fifoCostOfSelling(sold)
			openLots[i] = openLots[i].sell(sold)
		default:
			costOfSold = h.TotalInvested.Mul(sold).Div(h.TotalAmount)
		}
		h.Realized = h.Realized.Add(tx.BuyPrice.Mul(sold).Sub(costOfSold))
		h.TotalAmount = h.TotalAmount.Sub(sold)
		h.TotalInvested = h.TotalInvested.Sub(costOfSold)
	}

	for i := range holdings {
		holdings[i].Valuation = valuate(holdings[i], prices)
	}
	return holdings
}

// valuate returns the price dependent fields of h, or nil if the price is
// unknown or not in the currency of h.
func valuate(h Holding, prices PriceOracle) *Valuation {
	price, ok := lookup(prices, h.CoinID)
	if !ok || !sameCurrency(price, h.TotalInvested) {
		return nil
	}
	avg, _ := h.AvgBuyPrice()
	return &Valuation{
		CurrentPrice: price,
		AvgBuyPrice:  avg,
		Profit:       CalculateProfit(avg, price, h.TotalAmount),
	}
}
