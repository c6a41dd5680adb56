package identity

import (
	"errors"
	"strings"
)

// ErrInvalidPhone indicates the supplied national number cannot be
// canonicalized.
var ErrInvalidPhone = errors.New("invalid phone number")

// CanonicalPhone prefixes the national number with the country prefix used as
// the unique account key. Numbers already carrying the prefix pass through so
// callers holding a canonical phone can feed it back in.
func CanonicalPhone(prefix, national string) (string, error) {
	national = strings.TrimSpace(national)
	if national == "" {
		return "", ErrInvalidPhone
	}
	if strings.HasPrefix(national, prefix) {
		return national, nil
	}
	for _, r := range national {
		if r < '0' || r > '9' {
			return "", ErrInvalidPhone
		}
	}
	return prefix + national, nil
}
