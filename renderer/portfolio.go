package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/coinfolio"
)

// money formats m as a price in currency.
func money(m coinfolio.Money, currency string) string {
	return Price(m.Float64(), currency)
}

// signedMoney formats m as a price with its sign.
func signedMoney(m coinfolio.Money, currency string) string {
	if m.IsNegative() {
		return "-" + money(m.Neg(), currency)
	}
	return "+" + money(m, currency)
}

// Holdings renders the holdings table. Holdings without a known price are
// listed in a separate section.
func Holdings(holdings []coinfolio.Holding, currency string, method coinfolio.CostBasisMethod) string {
	var r mdRenderer
	r.Printf("# Holdings\n\n")
	if len(holdings) == 0 {
		r.Printf("No transactions yet, add one with `coins add`.\n")
		return r.String()
	}

	realizes := method != coinfolio.Additive
	header := []string{"Coin", "Amount", "Avg Buy", "Price", "Value", "Profit", "Profit %"}
	align := []string{":---", "---:", "---:", "---:", "---:", "---:", "---:"}
	if realizes {
		header = append(header, "Realized")
		align = append(align, "---:")
	}

	ConditionalBlock(&r, func(w io.Writer) bool {
		fmt.Fprintf(w, "| %s |\n", strings.Join(header, " | "))
		fmt.Fprintf(w, "| %s |\n", strings.Join(align, " | "))
		n := 0
		for _, h := range holdings {
			if h.Valuation == nil {
				continue
			}
			v := h.Valuation
			row := []string{
				coinLabel(h),
				h.TotalAmount.String(),
				money(v.AvgBuyPrice, currency),
				money(v.CurrentPrice, currency),
				money(v.CurrentValue, currency),
				signedMoney(v.Profit.Profit, currency),
				Percentage(float64(v.ProfitPercentage)),
			}
			if realizes {
				row = append(row, signedMoney(h.Realized, currency))
			}
			fmt.Fprintf(w, "| %s |\n", strings.Join(row, " | "))
			n++
		}
		return n > 0
	})

	ConditionalBlock(&r, func(w io.Writer) bool {
		fmt.Fprintf(w, "\n## Without price\n\n")
		fmt.Fprintf(w, "| Coin | Amount | Avg Buy | Invested |\n|:---|---:|---:|---:|\n")
		n := 0
		for _, h := range holdings {
			if h.Valuation != nil {
				continue
			}
			avg := "n/a"
			if a, ok := h.AvgBuyPrice(); ok {
				avg = money(a, currency)
			}
			fmt.Fprintf(w, "| %s | %s | %s | %s |\n", coinLabel(h), h.TotalAmount, avg, money(h.TotalInvested, currency))
			n++
		}
		return n > 0
	})
	return r.String()
}

func coinLabel(h coinfolio.Holding) string {
	if h.CoinName == "" {
		return escape(h.CoinID)
	}
	return fmt.Sprintf("%s (%s)", escape(h.CoinName), escape(h.CoinSymbol))
}

// summaryView is the data of the summary template.
type summaryView struct {
	coinfolio.PortfolioValue
	Currency     string
	Holdings     int
	Transactions int
}

// PortfolioSummary renders the portfolio totals.
func PortfolioSummary(v coinfolio.PortfolioValue, currency string, holdings, transactions int) string {
	return renderTemplate("summary", "summary.md", nil, summaryView{
		PortfolioValue: v,
		Currency:       currency,
		Holdings:       holdings,
		Transactions:   transactions,
	})
}

// allocationWidth is the width of the allocation bars.
const allocationWidth = 20

// Allocation renders the share of each coin in the portfolio value.
func Allocation(entries []coinfolio.AllocationEntry, currency string) string {
	var r mdRenderer
	r.Printf("## Allocation\n\n")
	if len(entries) == 0 {
		r.Printf("Nothing to allocate.\n")
		return r.String()
	}
	r.Row("Coin", "Value", "Share", "")
	r.Row(":---", "---:", "---:", ":---")
	for _, e := range entries {
		label := escape(e.CoinID)
		if e.CoinName != "" {
			label = fmt.Sprintf("%s (%s)", escape(e.CoinName), escape(e.CoinSymbol))
		}
		bar := int(float64(e.Percentage) / 100 * allocationWidth)
		r.Row(label, money(e.Value, currency), e.Percentage.String(), bars(bar))
	}
	return r.String()
}

func bars(n int) string { return strings.Repeat("█", n) }

// Transactions renders the transaction log in insertion order.
func Transactions(txs []coinfolio.Transaction, currency string) string {
	var r mdRenderer
	r.Printf("# Transactions\n\n")
	if len(txs) == 0 {
		r.Printf("No transactions yet.\n")
		return r.String()
	}
	r.Row("ID", "Date", "Type", "Coin", "Amount", "Price", "Total", "Memo")
	r.Row(":---", ":---", ":---", ":---", "---:", "---:", "---:", ":---")
	for _, tx := range txs {
		cur := tx.BuyPrice.Currency()
		if cur == "" {
			cur = currency
		}
		r.Row(
			shortID(tx.ID),
			tx.Date.String(),
			string(tx.Type),
			fmt.Sprintf("%s (%s)", escape(tx.CoinName), escape(tx.CoinSymbol)),
			tx.Amount.String(),
			money(tx.BuyPrice, cur),
			money(tx.Cost(), cur),
			escape(tx.Memo),
		)
	}
	return r.String()
}

// shortID returns the random end of a transaction id, enough to tell them apart.
func shortID(id string) string {
	if len(id) > 8 {
		return id[len(id)-8:]
	}
	return id
}
