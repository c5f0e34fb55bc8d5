package labels

// DefaultMaxLen is the label length above which labels are abbreviated.
const DefaultMaxLen = 63

// Option configures label resolution.
type Option func(*resolveConfig)

type resolveConfig struct {
	filterAccessions bool
	maxLen           int
}

func newResolveConfig(opts []Option) resolveConfig {
	cfg := resolveConfig{maxLen: DefaultMaxLen}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithAccessionFiltering drops names that duplicate one of the concept's
// accessions before picking the label.
func WithAccessionFiltering(enabled bool) Option {
	return func(c *resolveConfig) {
		c.filterAccessions = enabled
	}
}

// WithMaxLen sets the length that triggers abbreviation. Zero or a negative
// value disables it.
func WithMaxLen(n int) Option {
	return func(c *resolveConfig) {
		c.maxLen = n
	}
}
