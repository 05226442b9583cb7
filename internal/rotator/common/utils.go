package common

import (
	"context"
)

// CtxClosed reports whether the context has been canceled without blocking.
func CtxClosed(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// GetPercentage calculates what percentage 'currentValue' is of 'total'.
func GetPercentage(total, currentValue uint64) float64 {
	if total == 0 {
		return 100 //nolint:mnd
	}

	return float64(currentValue) / float64(total) * 100 //nolint:mnd
}
