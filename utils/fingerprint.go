// Package utils holds the hashing helpers used for cache keys.
package utils

import "hash/fnv"

// FingerprintString returns the FNV-1a 64-bit hash of s.
func FingerprintString(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}
