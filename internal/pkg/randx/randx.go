/*
Package randx provides cryptographically secure random identifiers.

It generates Base62 email verification tokens and UUID connection IDs.
*/
package randx

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

const (
	// Base62Chars is the character set used for Base62 encoding (0-9, A-Z, a-z).
	Base62Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// Base62Len is the number of characters in the Base62 set (62).
	Base62Len = int64(len(Base62Chars))

	// VerificationTokenLength is the fixed length of email verification tokens.
	VerificationTokenLength = 32
)

// base62String generates a random Base62 string of the given length using
// crypto/rand.
func base62String(length int) (string, error) {
	result := make([]byte, length)

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(Base62Len))
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %v", err)
		}

		result[i] = Base62Chars[num.Int64()]
	}

	return string(result), nil
}

// VerificationToken generates a Base62 token of VerificationTokenLength
// used to verify a user's email address.
func VerificationToken() (string, error) {
	return base62String(VerificationTokenLength)
}

// ConnectionID generates a UUID v4 string identifying one socket connection
// in logs.
func ConnectionID() string {
	return uuid.New().String()
}
