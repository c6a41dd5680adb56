package otp

import (
	"context"
	"crypto/subtle"
	"sync"
	"time"

	"github.com/wigglew/wigglew_auth/internal/notification"
)

type challenge struct {
	code      string
	expiresAt time.Time
}

// MemoryProvider keeps outstanding codes in process memory. Used in tests and
// dev mode when Redis is absent.
type MemoryProvider struct {
	mu       sync.Mutex
	codes    map[string]challenge
	notifier notification.Notifier
	ttl      time.Duration
	length   int
	now      func() time.Time
}

// NewMemoryProvider builds an in-memory OTP provider.
func NewMemoryProvider(notifier notification.Notifier, ttl time.Duration, length int) *MemoryProvider {
	return &MemoryProvider{
		codes:    make(map[string]challenge),
		notifier: notifier,
		ttl:      ttl,
		length:   length,
		now:      time.Now,
	}
}

// Issue generates a fresh code, replaces any outstanding challenge for the
// phone and dispatches it.
func (p *MemoryProvider) Issue(ctx context.Context, phone string) error {
	code, err := GenerateCode(p.length)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.codes[phone] = challenge{code: code, expiresAt: p.now().Add(p.ttl)}
	p.mu.Unlock()
	return p.notifier.Send(ctx, notification.Message{To: phone, Body: smsBody(code, p.ttl)})
}

// Check reports whether code matches a non-expired outstanding challenge. A
// match consumes the challenge; a mismatch leaves it outstanding.
func (p *MemoryProvider) Check(_ context.Context, phone, code string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	ch, ok := p.codes[phone]
	if !ok {
		return false, nil
	}
	if p.now().After(ch.expiresAt) {
		delete(p.codes, phone)
		return false, nil
	}
	if subtle.ConstantTimeCompare([]byte(ch.code), []byte(code)) != 1 {
		return false, nil
	}
	delete(p.codes, phone)
	return true, nil
}
