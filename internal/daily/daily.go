package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % n.
func WordIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}

// Target picks the day's challenge word from candidates, which must be sorted
// so the choice is stable across restarts. ok is false when candidates is empty.
func Target(date time.Time, salt string, candidates []string) (word string, idx int, ok bool) {
	if len(candidates) == 0 {
		return "", 0, false
	}
	idx = WordIndex(date, salt, len(candidates))
	return candidates[idx], idx, true
}
