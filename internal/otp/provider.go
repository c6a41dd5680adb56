// Package otp issues and checks short-lived one-time passcodes keyed by
// canonical phone number. Issuing overwrites any outstanding code for the
// phone; a successful check consumes the code, a failed check leaves it
// outstanding so the caller may retry.
package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const keyPrefix = "otp:v1:"

// GenerateCode produces a numeric code of the given length using crypto/rand.
func GenerateCode(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("code length must be positive, got %d", length)
	}
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("generate code: %w", err)
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}

func smsBody(code string, ttl time.Duration) string {
	return fmt.Sprintf("Your verification code is %s. It expires in %s.", code, ttl)
}
