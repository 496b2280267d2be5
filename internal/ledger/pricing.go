package ledger

import "time"

// TotalPriceCents computes the total price of a rental window at the
// given hourly rate. Both the rate and the result are integer cents;
// the computation never touches binary floating point.
//
// The exact value is rateCentsPerHour * seconds / 3600 cents. The
// division is performed once, at the end, rounding half to even, so
// fractional hours price exactly and repeated bookings of the same
// window always produce the same total.
//
// Durations are taken at whole-second resolution, matching the
// DATETIME precision rentals are stored with.
func TotalPriceCents(rateCentsPerHour int64, pickup, dropoff time.Time) int64 {
	seconds := int64(dropoff.Sub(pickup) / time.Second)
	if seconds <= 0 || rateCentsPerHour <= 0 {
		return 0
	}
	return divRoundHalfEven(rateCentsPerHour*seconds, 3600)
}

// divRoundHalfEven divides two non-negative integers rounding half to
// even (banker's rounding).
func divRoundHalfEven(num, den int64) int64 {
	q := num / den
	rem := num % den
	switch {
	case 2*rem > den:
		return q + 1
	case 2*rem == den:
		if q%2 != 0 {
			return q + 1
		}
		return q
	default:
		return q
	}
}
