package coinfolio

import "github.com/etnz/coinfolio/date"

// lot represents a single purchase of a coin, used for FIFO cost basis.
type lot struct {
	Date     date.Date
	Quantity Quantity
	Cost     Money // Total cost of the lot (quantity * price)
}

type lots []lot

// fifoCostOfSelling calculates the cost of selling a quantity of coins using FIFO.
func (l lots) fifoCostOfSelling(quantityToSell Quantity) Money {
	var costOfSold Money

	for _, current := range l {
		if quantityToSell.IsZero() {
			break
		}
		if current.Quantity.GreaterThan(quantityToSell) {
			// Partial sale from this lot
			return costOfSold.Add(current.Cost.Mul(quantityToSell).Div(current.Quantity))
		}
		costOfSold = costOfSold.Add(current.Cost)
		quantityToSell = quantityToSell.Sub(current.Quantity)
	}
	return costOfSold
}

// sell returns the lots remaining after selling quantityToSell, oldest lots first.
func (l lots) sell(quantityToSell Quantity) lots {
	remaining := make(lots, 0, len(l))

	for _, current := range l {
		if quantityToSell.IsZero() {
			remaining = append(remaining, current)
			continue
		}

		if current.Quantity.GreaterThan(quantityToSell) {
			// Partial sale from this lot
			soldCost := current.Cost.Mul(quantityToSell).Div(current.Quantity)
			remaining = append(remaining, lot{
				Date:     current.Date,
				Quantity: current.Quantity.Sub(quantityToSell),
				Cost:     current.Cost.Sub(soldCost),
			})
			quantityToSell = Q(0)
		} else {
			// Full sale of this lot
			quantityToSell = quantityToSell.Sub(current.Quantity)
		}
	}
	return remaining
}
