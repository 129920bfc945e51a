// Package security generates the secrets the portal hands out: second-factor
// challenge codes and placeholder passwords for provisioned accounts. Both
// draw from crypto/rand with rejection-free, unbiased selection.
package security

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const (
	challengeCodeLength = 6
	digits              = "0123456789"

	placeholderSecretLength   = 32
	placeholderSecretAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
)

var errEmptyAlphabet = errors.New("alphabet must not be empty")

// ChallengeCode returns a random 6-digit numeric string. Leading zeros are
// allowed; the code space is the full 000000-999999 range.
func ChallengeCode() (string, error) {
	return randomFromAlphabet(challengeCodeLength, digits)
}

// PlaceholderSecret returns a throwaway password for accounts provisioned by
// an administrator. It is hashed immediately and never revealed, so the
// account stays unusable until an out-of-band reset.
func PlaceholderSecret() (string, error) {
	return randomFromAlphabet(placeholderSecretLength, placeholderSecretAlphabet)
}

func randomFromAlphabet(length int, alphabet string) (string, error) {
	if len(alphabet) == 0 {
		return "", errEmptyAlphabet
	}

	limit := big.NewInt(int64(len(alphabet)))
	value := make([]byte, length)
	for index := range value {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		value[index] = alphabet[position.Int64()]
	}

	return string(value), nil
}
