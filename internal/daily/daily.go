// Package daily picks the shared deal of the day and records who finished it.
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

// Seed returns the deal seed for a date using HMAC(salt, YYYY-MM-DD).
// Everyone asking on the same UTC day with the same salt gets the same deal.
func Seed(date time.Time, salt string) int64 {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes, sign bit cleared so seeds print as positive numbers
	return int64(binary.BigEndian.Uint64(sum[:8]) &^ (1 << 63))
}
