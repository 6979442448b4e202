// Package daily derives the daily puzzle: the same 16 boards for every
// player on a given UTC date.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// draw returns a deterministic value for (salt, date, k) using
// HMAC(salt, "YYYY-MM-DD#k").
func draw(salt, dateKey string, k int) uint64 {
	h := hmac.New(sha256.New, []byte(salt))
	fmt.Fprintf(h, "%s#%d", dateKey, k)
	sum := h.Sum(nil)
	// take first 8 bytes to uint64 for modulus distribution
	return binary.BigEndian.Uint64(sum[:8])
}

// Targets picks n distinct answers for date with a partial Fisher–Yates
// shuffle driven by draw. answers is not modified.
func Targets(date time.Time, salt string, answers []string, n int) ([]string, error) {
	if n > len(answers) {
		return nil, fmt.Errorf("daily: need %d answers, have %d", n, len(answers))
	}
	dk := DateKey(date)
	pool := append([]string(nil), answers...)
	for i := 0; i < n; i++ {
		j := i + int(draw(salt, dk, i)%uint64(len(pool)-i))
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n], nil
}
