package cipher

import "time"

// Option configures a Cipher.
type Option func(*config)

type config struct {
	compressionThreshold int
	compressionDisabled  bool
	now                  func() time.Time
}

func defaultConfig() *config {
	return &config{
		compressionThreshold: defaultCompressionThreshold,
		now:                  time.Now,
	}
}

// WithCompressionThreshold sets the minimum payload size in bytes before
// compression is attempted. Smaller payloads are sealed as-is.
func WithCompressionThreshold(n int) Option {
	return func(c *config) { c.compressionThreshold = n }
}

// WithCompressionDisabled turns payload compression off entirely.
func WithCompressionDisabled() Option {
	return func(c *config) { c.compressionDisabled = true }
}

// WithClock overrides the issued-at timestamp source.
func WithClock(now func() time.Time) Option {
	return func(c *config) { c.now = now }
}
