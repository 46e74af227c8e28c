package shell

import (
	"time"
)

// SystemClock is the production Clock reading wall time in UTC.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
