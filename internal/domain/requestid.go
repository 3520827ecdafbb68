package domain

import (
	"math/rand"
	"time"
)

const requestIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateRequestID returns a human-facing request identifier in the form
// REQ-<YYMMDD>-<3 base36 chars>. Uniqueness is probabilistic; the store does
// not enforce it.
func GenerateRequestID(now time.Time) string {
	suffix := make([]byte, 3)
	for i := range suffix {
		suffix[i] = requestIDAlphabet[rand.Intn(len(requestIDAlphabet))]
	}
	return "REQ-" + now.Format("060102") + "-" + string(suffix)
}
