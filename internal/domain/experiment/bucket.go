package experiment

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

// Bucket deterministically assigns a subject to one of n variants. It hashes
// "subjectID:experimentID" with SHA-256 and maps the first 8 bytes into
// [0, n). The assignment is stable across processes, platforms and call
// order; it never depends on host string-hashing internals.
func Bucket(subjectID, experimentID string, n int) int {
	if n <= 0 {
		return 0
	}

	sum := sha256.Sum256([]byte(fmt.Sprintf("%s:%s", subjectID, experimentID)))
	return int(binary.BigEndian.Uint64(sum[:8]) % uint64(n))
}

// AllocationFraction maps the subject into [0, 1) for traffic allocation
// checks. A distinct salt keeps enrollment independent of variant choice.
func AllocationFraction(subjectID, experimentID string) float64 {
	sum := sha256.Sum256([]byte(fmt.Sprintf("alloc:%s:%s", subjectID, experimentID)))
	return float64(binary.BigEndian.Uint64(sum[:8])>>11) / float64(uint64(1)<<53)
}
