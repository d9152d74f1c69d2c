package clock

import "time"

// Clock stamps command intents with their issue time.
type Clock interface {
	Now() time.Time
}
