package coinfolio

import "github.com/etnz/coinfolio/date"

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// EUR is a helper for test to create euro money from const
func EUR(v float64) Money { return M(v, "EUR") }

// NO is a helper for test to create money from const with no currency set
func NO(v float64) Money { return M(v, "") }

// buy is a helper for test to create a buy transaction in USD.
func buy(day, coin string, amount, price float64) Transaction {
	return NewTransaction(date.MustParse(day), Buy, coin, coinName(coin), coinSymbol(coin), Q(amount), USD(price))
}

// sell is a helper for test to create a sell transaction in USD.
func sell(day, coin string, amount, price float64) Transaction {
	return NewTransaction(date.MustParse(day), Sell, coin, coinName(coin), coinSymbol(coin), Q(amount), USD(price))
}

func coinName(id string) string {
	switch id {
	case "bitcoin":
		return "Bitcoin"
	case "ethereum":
		return "Ethereum"
	case "solana":
		return "Solana"
	}
	return id
}

func coinSymbol(id string) string {
	switch id {
	case "bitcoin":
		return "btc"
	case "ethereum":
		return "eth"
	case "solana":
		return "sol"
	}
	return id
}

// buyAt is a helper for test to create a buy transaction at price, in its currency.
func buyAt(day, coin string, amount float64, price Money) Transaction {
	return NewTransaction(date.MustParse(day), Buy, coin, coinName(coin), coinSymbol(coin), Q(amount), price)
}
