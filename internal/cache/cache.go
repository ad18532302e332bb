package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache defines the interface for caching operations
type Cache interface {
	// Get retrieves a value from the cache
	// Returns the value and a boolean indicating whether the key was found
	Get(ctx context.Context, key string) (interface{}, bool)

	// Set adds a value to the cache with the specified expiration
	// If expiration is 0, the item never expires (but may be evicted)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration)

	// Delete removes a key from the cache
	Delete(ctx context.Context, key string)

	// DeleteByPrefix removes all keys with the given prefix
	DeleteByPrefix(ctx context.Context, prefix string)

	// Flush removes all items from the cache
	Flush(ctx context.Context)
}

// Predefined cache key prefixes for different entity types
const (
	PrefixProduct       = "product:v1:"
	PrefixDiscountRule  = "discountrule:v1:"
	PrefixPromotion     = "promotion:v1:"
	PrefixPromotionCode = "promotioncode:v1:"
	PrefixCampaign      = "campaign:v1:"
)

// BuildCacheKey builds a cache key from a prefix and parts
func BuildCacheKey(prefix string, parts ...string) string {
	key := prefix
	for i, part := range parts {
		if i > 0 {
			key += ":"
		}
		key += part
	}
	return key
}

// FormatKey is a helper for ad hoc keys
func FormatKey(prefix string, format string, args ...interface{}) string {
	return prefix + fmt.Sprintf(format, args...)
}
