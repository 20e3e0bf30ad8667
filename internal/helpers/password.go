package helpers

import (
	"math/rand/v2"

	"vpn-tg-admin/internal/constants"
)

// GeneratePassword returns a random alphanumeric string of length n.
// It is not cryptographically strong; the backend owns credential policy.
func GeneratePassword(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = constants.PasswordAlphabet[rand.IntN(len(constants.PasswordAlphabet))]
	}
	return string(b)
}
