// File: utils/constants.go
package utils

import "time"

// PaymentCachePrefix is the prefix used for Redis payment session cache keys.
const PaymentCachePrefix = "payment:"

// PaymentCacheTTL is the time-to-live for cached payment poll tokens. The
// booking row in Mongo remains the source of truth; the cache only speeds up
// status polling from the client.
const PaymentCacheTTL = 24 * time.Hour
