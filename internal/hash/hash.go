// Package hash provides the one-way credential hasher used for stored
// passwords.
package hash

import "golang.org/x/crypto/bcrypt"

// Bcrypt hashes passwords with bcrypt. Each digest carries its own salt and
// comparison runs in constant time.
type Bcrypt struct {
	cost int
}

// NewBcrypt returns a bcrypt hasher at the given cost. Costs outside the
// valid range fall back to the bcrypt default.
func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost}
}

// Hash derives a salted digest from the raw password.
func (b *Bcrypt) Hash(raw string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(raw), b.cost)
}

// Verify reports whether raw matches the stored digest.
func (b *Bcrypt) Verify(raw string, digest []byte) bool {
	return bcrypt.CompareHashAndPassword(digest, []byte(raw)) == nil
}
