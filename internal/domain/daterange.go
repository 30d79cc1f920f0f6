package domain

import "time"

// DateLayout is the wire and log format for calendar dates.
const DateLayout = "2006-01-02"

// DateRange is a stay expressed as calendar days. Both ends are inclusive:
// a range whose CheckOut equals another range's CheckIn shares that day.
type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// NewDateRange truncates both ends to midnight UTC so that time-of-day and
// location never influence comparisons.
func NewDateRange(checkIn, checkOut time.Time) DateRange {
	return DateRange{CheckIn: dateOnly(checkIn), CheckOut: dateOnly(checkOut)}
}

// Valid reports whether CheckOut is not before CheckIn.
// Single-day ranges (CheckIn == CheckOut) are valid.
func (r DateRange) Valid() bool {
	return !r.CheckOut.Before(r.CheckIn)
}

// Overlaps reports whether r and o share at least one day:
// r.CheckIn <= o.CheckOut AND r.CheckOut >= o.CheckIn.
// Same-day turnover (one range ending the day the other starts) overlaps.
// The SQL in repo.ReservationRepo.ExistsOverlap uses the same predicate.
func (r DateRange) Overlaps(o DateRange) bool {
	return !r.CheckIn.After(o.CheckOut) && !r.CheckOut.Before(o.CheckIn)
}

// String renders the range as "YYYY-MM-DD..YYYY-MM-DD".
func (r DateRange) String() string {
	return r.CheckIn.Format(DateLayout) + ".." + r.CheckOut.Format(DateLayout)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
