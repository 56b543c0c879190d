package nowplaying

import "time"

// Backoff computes the delay before the next poll. Each consecutive
// failure beyond the first doubles the delay, up to Max.
type Backoff struct {
	Interval time.Duration
	Max      time.Duration
}

// Next returns the delay to wait after the given number of consecutive
// failures. Zero failures (or one) yields the normal interval.
func (b Backoff) Next(failures int) time.Duration {
	d := b.Interval
	limit := max(b.Max, b.Interval)
	for i := 1; i < failures; i++ {
		d *= 2
		if d >= limit {
			return limit
		}
	}
	return d
}
