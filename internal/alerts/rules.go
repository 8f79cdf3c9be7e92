// Package alerts decides whether a quantity change deserves an SMS and
// sends it.
package alerts

// Policy is the user's alert configuration at the time of a change.
type Policy struct {
	SMSEnabled       bool
	NotifyAtZero     bool
	MinimumThreshold int
}

type Decision int

const (
	Suppress Decision = iota
	FireLowStock
	FireOutOfStock
)

func (d Decision) String() string {
	switch d {
	case FireLowStock:
		return "low_stock"
	case FireOutOfStock:
		return "out_of_stock"
	default:
		return "suppress"
	}
}

// Decide evaluates a single quantity change from prev to next.
//
// Only decreases can fire. Low stock fires when next equals the threshold
// exactly, so a change that jumps over the threshold stays silent.
// Out of stock takes precedence when next is zero and NotifyAtZero is set.
func Decide(prev, next int, p Policy) Decision {
	if !p.SMSEnabled || next >= prev {
		return Suppress
	}
	if next == 0 && p.NotifyAtZero {
		return FireOutOfStock
	}
	if next == p.MinimumThreshold {
		return FireLowStock
	}
	return Suppress
}
