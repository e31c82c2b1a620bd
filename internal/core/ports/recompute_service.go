package ports

import "context"

// RecomputeService rebuilds every user's eco score and badge set from
// their full action history. Idempotent: rerunning on an unchanged
// action set yields identical state.
type RecomputeService interface {
	// Run returns the number of users processed.
	Run(ctx context.Context) (int, error)
}
