package coinfolio

// AllocationEntry is the share of one coin in the portfolio value.
type AllocationEntry struct {
	CoinID     string
	CoinName   string
	CoinSymbol string
	Value      Money
	Percentage Percent // raw, unrounded.
}

// NewAllocation returns the share of each priced holding in the total
// current value, in the order of holdings.
//
// Holdings without a valuation are left out of both the total and the
// result, and so are holdings valued in another currency than the first
// priced one. When the total is zero every percentage is 0.
func NewAllocation(holdings []Holding) []AllocationEntry {
	var total Money
	var q quote
	priced := make([]Holding, 0, len(holdings))
	for _, h := range holdings {
		if h.Valuation == nil || !q.accepts(h.currency()) {
			continue
		}
		total = total.Add(h.Valuation.CurrentValue)
		priced = append(priced, h)
	}

	entries := make([]AllocationEntry, 0, len(priced))
	for _, h := range priced {
		entries = append(entries, AllocationEntry{
			CoinID:     h.CoinID,
			CoinName:   h.CoinName,
			CoinSymbol: h.CoinSymbol,
			Value:      h.Valuation.CurrentValue,
			Percentage: percentOf(h.Valuation.CurrentValue, total),
		})
	}
	return entries
}
