package itinerary

import (
	"crypto/rand"
	"fmt"
	"time"
)

// codeAlphabet has 32 symbols with 0/O, 1/I and similar lookalikes
// removed, so codes survive being read over the phone. 32 divides 256
// evenly, so reducing a random byte mod len keeps the draw uniform.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const codeSuffixLen = 6

// GenerateCode produces a lookup token of the form IT-YYYY-XXXXXX.
// It draws from crypto/rand only; there is no insecure fallback. The
// generator does not check for collisions — the unique index on the
// itineraries collection does, and the caller retries on duplicate-key.
func GenerateCode() (string, error) {
	buf := make([]byte, codeSuffixLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("secure random source unavailable: %w", err)
	}
	suffix := make([]byte, codeSuffixLen)
	for i, b := range buf {
		suffix[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return fmt.Sprintf("IT-%d-%s", time.Now().UTC().Year(), suffix), nil
}
