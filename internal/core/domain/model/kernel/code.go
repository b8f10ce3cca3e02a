package kernel

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// codeAlphabet deliberately excludes visually ambiguous characters (0/O, 1/I/L)
// so order and tracking numbers survive being read aloud or retyped.
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const (
	orderNumberLength    = 8
	trackingNumberLength = 12
)

// NewCode generates a random short code of the given length drawn from codeAlphabet.
// Codes are collision-resistant for the volumes this system handles; uniqueness is
// additionally enforced at the storage layer.
func NewCode(length int) string {
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			// crypto/rand failing means the platform entropy source is broken;
			// there is nothing sensible to degrade to.
			panic(fmt.Errorf("short code generation failed: %w", err))
		}
		b[i] = codeAlphabet[n.Int64()]
	}
	return string(b)
}

// NewOrderNumber generates a human-facing order number, e.g. "ORD-7XK2MNP9".
// Generated exactly once at order creation and immutable thereafter.
func NewOrderNumber() string {
	return "ORD-" + NewCode(orderNumberLength)
}

// NewTrackingNumber generates a shipment tracking number, e.g. "TRK-7XK2MNP9Q4WZ".
// Generated exactly once at order creation and immutable thereafter.
func NewTrackingNumber() string {
	return "TRK-" + NewCode(trackingNumberLength)
}
