// Package position computes the deterministic, key-derived starting offset
// used for circular embedding/extraction.
package position

// Generate returns a deterministic value in [0, limit) derived from key.
//
// seed = sum of the Unicode code points of key's characters
// next = (1664525*seed + 1013904223) mod 2^32
// return next mod limit
//
// This is a single LCG step, not a full PRNG stream: the codec only ever
// needs one starting offset per (key, limit) pair.
func Generate(key string, limit int) int {
	if limit <= 0 {
		return 0
	}
	var seed uint32
	for _, r := range key {
		seed += uint32(r)
	}
	next := uint32(uint64(seed)*1664525 + 1013904223)
	return int(next % uint32(limit))
}
