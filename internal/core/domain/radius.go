package domain

import (
	"crypto/rand"
	"fmt"
	"time"
)

// Attribute names and operator written to radcheck. These, together with
// the expiration string layout, are the wire contract with the RADIUS
// evaluator and must be reproduced exactly.
const (
	AttrCleartextPassword = "Cleartext-Password"
	AttrExpiration        = "Expiration"
	RadiusOp              = ":="
)

// BlockedGroupPriority is the fixed priority of the radusergroup row that
// marks a guest as blocked.
const BlockedGroupPriority = 1

// passwordAlphabet avoids visually confusable characters (I, l, 1, O, 0).
const passwordAlphabet = "abcdefghjkmnpqrstuvwxyzABCDEFGHJKMNPQRSTUVWXYZ23456789"

const passwordLength = 10

// GeneratePassword returns a fixed-length guest password drawn from the
// ambiguity-free alphabet using a cryptographically strong random source.
func GeneratePassword() (string, error) {
	buf := make([]byte, passwordLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate password: %w", err)
	}
	out := make([]byte, passwordLength)
	for i, b := range buf {
		out[i] = passwordAlphabet[int(b)%len(passwordAlphabet)]
	}
	return string(out), nil
}

const expirationLayout = "Jan 02 2006 15:04:05"

// FormatExpiration renders a timestamp the way the RADIUS evaluator expects
// the Expiration check attribute: fixed-width month/day/year/time plus a
// GMT offset, always in UTC. Returns "" for the zero time; a guest with no
// expiration has no Expiration row.
func FormatExpiration(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(expirationLayout) + " GMT+00:00"
}
