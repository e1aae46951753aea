package coinfolio

import "fmt"

// CostBasisMethod defines how sell transactions affect a holding.
type CostBasisMethod int

const (
	// Additive adds every transaction amount and cost to the holding,
	// whatever its type. A sell therefore increases the position.
	Additive CostBasisMethod = iota
	// AverageCost removes sold coins from the position at the average cost
	// of the coins held, and records the difference with the proceeds as
	// realized profit.
	AverageCost
	// FIFO (First-In, First-Out) removes sold coins from the oldest lots
	// first, and records the difference with the proceeds as realized profit.
	FIFO
)

func (m CostBasisMethod) String() string {
	switch m {
	case Additive:
		return "additive"
	case AverageCost:
		return "average"
	case FIFO:
		return "fifo"
	default:
		return "unknown"
	}
}

// ParseCostBasisMethod parses a string into a CostBasisMethod.
func ParseCostBasisMethod(s string) (CostBasisMethod, error) {
	switch s {
	case "additive", "":
		return Additive, nil
	case "average":
		return AverageCost, nil
	case "fifo":
		return FIFO, nil
	default:
		return 0, fmt.Errorf("unknown cost basis method: %q", s)
	}
}

// realizes reports whether sells reduce the position under this method.
func (m CostBasisMethod) realizes() bool { return m == AverageCost || m == FIFO }
