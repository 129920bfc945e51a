// Package clock abstracts the current time so expiry logic is testable
// without real waiting.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

// System is the runtime clock.
type System struct{}

func (System) Now() time.Time {
	return time.Now().UTC()
}
