package entities

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
)

const anonimaxIDChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var anonimaxIDPattern = regexp.MustCompile(`^ANX-[A-Z0-9]{4}-[A-Z0-9]{4}$`)

// GenerateAnonimaxID generates a pseudonymous identifier like ANX-XXXX-XXXX
func GenerateAnonimaxID() (string, error) {
	parts := make([]byte, 8)
	max := big.NewInt(int64(len(anonimaxIDChars)))
	for i := range parts {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate anonimax id: %w", err)
		}
		parts[i] = anonimaxIDChars[n.Int64()]
	}
	return fmt.Sprintf("ANX-%s-%s", parts[:4], parts[4:]), nil
}

// IsValidAnonimaxID reports whether s has the ANX-XXXX-XXXX shape
func IsValidAnonimaxID(s string) bool {
	return anonimaxIDPattern.MatchString(s)
}
