package coinfolio

// Profit is the result of valuing an amount of coins bought at one price at
// another price.
type Profit struct {
	TotalBuyPrice    Money   // buy price times amount
	CurrentValue     Money   // current price times amount
	Profit           Money   // CurrentValue - TotalBuyPrice
	ProfitPercentage Percent // Profit relative to TotalBuyPrice, 0 when TotalBuyPrice is zero.
}

// CalculateProfit values amount coins bought at buyPrice at currentPrice.
//
// A zero TotalBuyPrice (free coins, or no coins) has no meaningful profit
// percentage, it is reported as exactly 0. Prices in two different
// currencies are not converted: only TotalBuyPrice and CurrentValue are set.
func CalculateProfit(buyPrice, currentPrice Money, amount Quantity) Profit {
	totalBuyPrice := buyPrice.Mul(amount)
	currentValue := currentPrice.Mul(amount)
	if !sameCurrency(totalBuyPrice, currentValue) {
		return Profit{TotalBuyPrice: totalBuyPrice, CurrentValue: currentValue}
	}
	profit := currentValue.Sub(totalBuyPrice)
	return Profit{
		TotalBuyPrice:    totalBuyPrice,
		CurrentValue:     currentValue,
		Profit:           profit,
		ProfitPercentage: percentOf(profit, totalBuyPrice),
	}
}

// Equal reports whether p and o hold the same values.
func (p Profit) Equal(o Profit) bool {
	return p.TotalBuyPrice.Equal(o.TotalBuyPrice) && p.CurrentValue.Equal(o.CurrentValue) &&
		p.Profit.Equal(o.Profit) && p.ProfitPercentage.Equal(o.ProfitPercentage)
}
