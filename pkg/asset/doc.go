// Package asset fetches and caches the images referenced by extracted
// elements.
//
// A [Pipeline] admits a URL, collapses concurrent requests for it into one
// fetch, bounds the number of in-flight fetches with a FIFO semaphore and
// keeps the successful results in a bounded in-memory cache. Failures are
// returned as coded errors from pkg/errors (ASSET_NETWORK, ASSET_TIMEOUT,
// ASSET_FORMAT, ASSET_TOO_LARGE, ASSET_UNSUPPORTED_URL) so callers can
// degrade to a placeholder and keep going.
//
// # Caching
//
// The in-memory cache holds at most [Options.CacheCapacity] records. When it
// is full, the oldest fifth is evicted before the next insert. An optional
// second level ([Options.L2], any pkg/cache backend) persists fetched bytes
// across runs.
//
// # Fetching
//
// [Fetcher] abstracts the transport. [HTTPFetcher] is the net/http
// implementation; tests substitute their own.
package asset
