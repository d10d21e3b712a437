// Package resilience provides a token-bucket RateLimiter used to pace
// outbound calls made by pipeline steps.
//
//	rl := resilience.NewRateLimiter(resilience.RateLimiterConfig{Rate: 50, Burst: 10})
//	if err := rl.Wait(ctx); err != nil {
//	    return err
//	}
//
// Limiting only delays calls; it never rejects them, so enabling it cannot
// change a task's outcome.
package resilience
