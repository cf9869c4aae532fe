// SPDX-License-Identifier: MPL-2.0

package session

import "time"

type (
	// Clock abstracts time for commands such as date, uptime and sleep.
	Clock interface {
		Now() time.Time
		Since(t time.Time) time.Duration
		After(d time.Duration) <-chan time.Time
	}

	// SystemClock is the Clock backed by the time package.
	SystemClock struct{}
)

// Now returns the current system time.
func (SystemClock) Now() time.Time { return time.Now() }

// Since returns the time elapsed since t.
func (SystemClock) Since(t time.Time) time.Duration { return time.Since(t) }

// After waits for d and then sends the current time.
func (SystemClock) After(d time.Duration) <-chan time.Time { return time.After(d) }
