package wasi

import "time"

// WallClock reads the host's realtime clock.
type WallClock interface {
	Now() time.Time
	Resolution() time.Duration
}

// MonotonicClock reads a clock that never goes backwards. Readings are
// absolute to the clock's own epoch; Clocks translates them to the guest
// instance's creation time.
type MonotonicClock interface {
	Now() time.Duration
	Resolution() time.Duration
}

// Clocks bundles the two clock sources of a context with the monotonic
// reading recorded at instance creation.
type Clocks struct {
	wall      WallClock
	monotonic MonotonicClock
	creation  time.Duration
}

// NewClocks records the creation timestamp from monotonic at construction.
func NewClocks(wall WallClock, monotonic MonotonicClock) *Clocks {
	return &Clocks{
		wall:      wall,
		monotonic: monotonic,
		creation:  monotonic.Now(),
	}
}

// DefaultClocks is the documented default factory: host system clocks.
func DefaultClocks() *Clocks {
	return NewClocks(systemWallClock{}, newSystemMonotonicClock())
}

// WallNow returns the current realtime reading.
func (c *Clocks) WallNow() time.Time {
	return c.wall.Now()
}

// WallResolution returns the realtime clock's resolution.
func (c *Clocks) WallResolution() time.Duration {
	return c.wall.Resolution()
}

// MonotonicNow returns time elapsed since instance creation.
func (c *Clocks) MonotonicNow() time.Duration {
	return c.monotonic.Now() - c.creation
}

// MonotonicResolution returns the monotonic clock's resolution.
func (c *Clocks) MonotonicResolution() time.Duration {
	return c.monotonic.Resolution()
}

type systemWallClock struct{}

func (systemWallClock) Now() time.Time            { return time.Now() }
func (systemWallClock) Resolution() time.Duration { return time.Nanosecond }

type systemMonotonicClock struct {
	base time.Time
}

func newSystemMonotonicClock() *systemMonotonicClock {
	return &systemMonotonicClock{base: time.Now()}
}

func (c *systemMonotonicClock) Now() time.Duration        { return time.Since(c.base) }
func (c *systemMonotonicClock) Resolution() time.Duration { return time.Nanosecond }
