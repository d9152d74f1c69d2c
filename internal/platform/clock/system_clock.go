package clock

import "time"

// SystemClock reads the wall clock, truncated to milliseconds in UTC so
// issued-at stamps survive a JSON round trip unchanged.
type SystemClock struct{}

func NewSystemClock() SystemClock { return SystemClock{} }

func (SystemClock) Now() time.Time { return time.Now().UTC().Truncate(time.Millisecond) }
