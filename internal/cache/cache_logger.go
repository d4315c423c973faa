package cache

import (
	"context"
	"log/slog"
)

// SafeInvalidatePattern invalidates a pattern and logs instead of
// returning the error. Invalidation failures never propagate to the
// write that triggered them; stale entries age out by TTL.
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Cache invalidation failed",
			"error", err,
			"pattern", pattern)
	}
}

// InvalidateCourseCache drops every cached course listing. Called after
// any write to the course collection.
func InvalidateCourseCache(ctx context.Context, cm *CacheManager) {
	SafeInvalidatePattern(ctx, cm.Course, "list:*")
}
