package remote

import "time"

// Config holds the backend client settings.
type Config struct {
	BaseURL    string
	TimeoutMs  int
	MaxRetries int
	// BackoffMs is the pause before the first retry; later retries wait
	// proportionally longer.
	BackoffMs int
}

// DefaultConfig points at a backend on localhost.
func DefaultConfig() Config {
	return Config{
		BaseURL:    "http://localhost:8080/api/v1",
		TimeoutMs:  5000,
		MaxRetries: 1,
		BackoffMs:  200,
	}
}

func (c Config) backoff(attempt int) time.Duration {
	return time.Duration(max(c.BackoffMs, 0)*attempt) * time.Millisecond
}

func (c Config) timeout() time.Duration {
	if c.TimeoutMs <= 0 {
		return time.Duration(DefaultConfig().TimeoutMs) * time.Millisecond
	}
	return time.Duration(c.TimeoutMs) * time.Millisecond
}
