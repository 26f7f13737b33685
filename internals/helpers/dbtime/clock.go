package dbtime

import "time"

// Clock is injected into services so "today" is controllable in tests.
type Clock func() time.Time

func SystemClock() Clock { return time.Now }

// FixedClock always reports t.
func FixedClock(t time.Time) Clock { return func() time.Time { return t } }

func (c Clock) Now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

func (c Clock) Today() Date { return DateOf(c.Now()) }
