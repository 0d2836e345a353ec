package ratelimit

import (
	"context"
	"time"
)

// Policy caps how many times an actor may perform an action inside a fixed
// window. Windows start on the first action and do not slide.
type Policy struct {
	Max    int64
	Window time.Duration
}

// DefaultTipPolicy is the per-payer cap on recorded tips.
var DefaultTipPolicy = Policy{Max: 50, Window: 24 * time.Hour}

// Result reports the outcome of one admission check.
type Result struct {
	Allowed   bool
	Remaining int64
	// RetryAfter is how long until the window resets. Zero when allowed.
	RetryAfter time.Duration
}

// Limiter admits or rejects one action per call. A rejected call must not
// consume quota, so hammering a closed window never pushes the reset out.
type Limiter interface {
	Check(ctx context.Context, actor, action string, policy Policy) (*Result, error)
}

// RetrySeconds converts a retry delay to whole seconds, rounding up so a
// client that waits the advertised time lands past the window edge.
func RetrySeconds(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	return int64((d + time.Second - 1) / time.Second)
}
