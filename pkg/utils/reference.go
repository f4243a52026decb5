package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const (
	referencePrefix = "alpha1"
	suffixAlphabet  = "0123456789abcdefghijklmnopqrstuvwxyz"
	suffixLength    = 7
)

// NewOrderReference generates the correlation key sent to the gateway as the
// order receipt. It ties a checkout attempt to its eventual gateway order
// before the gateway responds, so it only has to be unique on our side:
// millisecond timestamp plus a short random base36 suffix.
func NewOrderReference() string {
	suffix := make([]byte, suffixLength)
	max := big.NewInt(int64(len(suffixAlphabet)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails if the OS entropy source is broken;
			// degrade to a timestamp-derived character rather than panic.
			suffix[i] = suffixAlphabet[time.Now().UnixNano()%int64(len(suffixAlphabet))]
			continue
		}
		suffix[i] = suffixAlphabet[n.Int64()]
	}
	return fmt.Sprintf("%s_%d_%s", referencePrefix, time.Now().UnixMilli(), suffix)
}
