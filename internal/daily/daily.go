// Package daily derives reproducible board seeds from calendar dates.
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

// Seed returns the board seed for date: the first 8 bytes of
// HMAC-SHA256(salt, YYYY-MM-DD).
func Seed(date time.Time, salt string) uint64 {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	return binary.BigEndian.Uint64(h.Sum(nil)[:8])
}

// Seeds returns one seed per day for days consecutive days ending at end.
func Seeds(end time.Time, days int, salt string) []uint64 {
	out := make([]uint64, 0, max(days, 0))
	for i := days - 1; i >= 0; i-- {
		out = append(out, Seed(end.AddDate(0, 0, -i), salt))
	}
	return out
}
