package services

import "time"

// Clock returns the current time. Tests substitute a fixed clock.
type Clock func() time.Time
