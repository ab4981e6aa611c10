package retriever

const (
	defaultLimit         = 10
	defaultMinSimilarity = 0.2

	// candidates fetched per requested result, leaving room for rerank and dedup
	overFetchFactor = 2

	maxSimilarity = 1.0
)

type Option func(*Client)

func WithBoosts(b Boosts) Option {
	return func(c *Client) {
		c.boosts = b
	}
}

// result count used when a request leaves the limit unset
func WithDefaultLimit(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.defaultLimit = n
		}
	}
}

// similarity floor used when a request leaves it unset
func WithMinSimilarity(v float64) Option {
	return func(c *Client) {
		if v >= 0 && v <= 1 {
			c.minSimilarity = v
		}
	}
}
