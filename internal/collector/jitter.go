package collector

import "hash/fnv"

// jitter hashes the concatenated parts to a stable pseudo-random uint32, so
// generated datasets are identical across runs and platforms.
func jitter(parts ...string) uint32 {
	h := fnv.New32a()
	for _, p := range parts {
		h.Write([]byte(p))
	}
	return h.Sum32()
}
