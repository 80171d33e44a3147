package waiter

import "time"

const (
	DefaultMaxIntervalSeconds = 30
	DefaultMaxWaitSeconds     = 1200

	initialInterval = 1 * time.Second
)

// Config controls a single wait. Zero values select the defaults.
type Config struct {
	// MaxIntervalSeconds caps the spacing between two fetches.
	MaxIntervalSeconds int
	// MaxWaitSeconds bounds the whole wait.
	MaxWaitSeconds int
	// SucceedOnNotFound ends the wait successfully when the resource is gone.
	SucceedOnNotFound bool
}

func (c Config) maxInterval() time.Duration {
	if c.MaxIntervalSeconds <= 0 {
		return DefaultMaxIntervalSeconds * time.Second
	}
	return time.Duration(c.MaxIntervalSeconds) * time.Second
}

func (c Config) maxWait() time.Duration {
	if c.MaxWaitSeconds <= 0 {
		return DefaultMaxWaitSeconds * time.Second
	}
	return time.Duration(c.MaxWaitSeconds) * time.Second
}
