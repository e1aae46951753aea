package coinfolio

import "fmt"

// Percent is a raw percentage: 12.5 means 12.5%. It is never rounded by the
// valuation functions, formatting is left to the presentation layer.
type Percent float64

// Equal reports whether p and q are the same up to 1e-4.
func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}
