// Package date provides the calendar day of a transaction.
package date

import (
	"encoding/json"
	"fmt"
	"time"
)

// Layout is how dates are written, ISO-8601.
const Layout = "2006-01-02"

// lenient also accepts single digit months and days, like 2025-7-1.
const lenient = "2006-1-2"

// Date is a calendar day. The zero Date means "no date".
type Date struct {
	y int
	m time.Month
	d int
}

// time returns midnight UTC of d. Equal dates give equal times.
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// New returns the date of year, month and day, normalized like time.Date:
// February 30 is March 2.
func New(year int, month time.Month, day int) Date {
	return Of(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// Of returns the day of t in its own location.
func Of(t time.Time) Date {
	y, m, d := t.Date()
	return Date{y, m, d}
}

// Today returns the local current day.
func Today() Date { return Of(time.Now()) }

func (d Date) IsZero() bool       { return d == Date{} }
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }
func (d Date) After(x Date) bool  { return x.Before(d) }

// Add returns the date n days later, or earlier when n is negative.
func (d Date) Add(n int) Date { return New(d.y, d.m, d.d+n) }

func (d Date) String() string { return d.time().Format(Layout) }

// Parse reads a date like 2025-07-01 or 2025-7-1.
func Parse(s string) (Date, error) {
	t, err := time.Parse(lenient, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD: %w", s, err)
	}
	return Of(t), nil
}

// MustParse is like Parse but panics on error. It is meant for tests.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// MarshalJSON writes the date as a JSON string.
func (d Date) MarshalJSON() ([]byte, error) { return json.Marshal(d.String()) }

// UnmarshalJSON reads a date from a JSON string.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
