// Package coinfolio provides the types and functions behind a personal,
// local-first cryptocurrency dashboard. It keeps a log of buy and sell
// transactions, a list of favorite coins, and turns both into valuations
// using prices obtained from a market data provider.
//
// The core functionalities include:
//   - Transaction log: an ordered, append-mostly record of trades, each for a
//     single coin (see [Transaction], [Ledger] and [FileStore]).
//   - Valuation engine: stateless functions that reduce the transaction log
//     and a price oracle into per-coin holdings ([NewHoldings]), portfolio
//     wide totals ([NewPortfolioValue]) and allocation shares
//     ([NewAllocation]).
//   - Favorites: an ordered set of coin identifiers persisted next to the
//     transaction log.
//
// All valuation functions are pure: they hold no state, never mutate their
// inputs and return freshly built values, so they can be called
// concurrently. Prices that are unknown to the oracle are never treated as
// zero; the corresponding values are simply absent.
//
// This package serves as the foundational logic for the `coins`
// command-line tool.
package coinfolio
