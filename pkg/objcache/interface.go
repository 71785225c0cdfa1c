/*
 * Copyright (c) 2023-present Sigma-Soft, Ltd.
 * @author: Nikolay Nikitin
 */

package objcache

// Bounded cache of prepared objects. Implementations are safe for
// concurrent use; two callers preparing the same key concurrently may both
// Put, the later write stays cached.
type ICache[K comparable, V any] interface {
	// Gets value by key. Returns true and value if key exists, false and zero value otherwise
	Get(K) (value V, ok bool)

	// Puts value with key
	Put(K, V)
}
