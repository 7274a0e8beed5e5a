package utils

import (
	"crypto/rand"
	"fmt"
)

const claimCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const claimCodeLength = 6

// NewClaimCode generates a 6-character uppercase alphanumeric code used as
// pickup proof for a donation.
func NewClaimCode() (string, error) {
	buf := make([]byte, claimCodeLength)

	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate claim code: %w", err)
	}

	for i, b := range buf {
		buf[i] = claimCodeAlphabet[int(b)%len(claimCodeAlphabet)]
	}

	return string(buf), nil
}
