package engine

// DefaultThreshold is the largest batch executed with the bounded strategy.
const DefaultThreshold = 1000

// DefaultChannelCapacity is the bounded executor's channel capacity.
const DefaultChannelCapacity = 1000

// Strategy names an execution strategy.
type Strategy int

const (
	// StrategyBounded fans rows out through a fixed-capacity channel.
	StrategyBounded Strategy = iota
	// StrategyStreaming drains an in-flight pool in completion order.
	StrategyStreaming
)

func (s Strategy) String() string {
	switch s {
	case StrategyBounded:
		return "bounded"
	case StrategyStreaming:
		return "streaming"
	default:
		return "unknown"
	}
}

// Select picks the strategy for a batch of n rows: bounded when
// n <= threshold, streaming otherwise.
func Select(n, threshold int) Strategy {
	if n <= threshold {
		return StrategyBounded
	}
	return StrategyStreaming
}
