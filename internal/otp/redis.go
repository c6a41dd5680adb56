package otp

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wigglew/wigglew_auth/internal/notification"
)

// RedisProvider stores outstanding codes in Redis with a TTL and dispatches
// them over the notification channel. Expiry is enforced by the key TTL.
type RedisProvider struct {
	client   *redis.Client
	notifier notification.Notifier
	ttl      time.Duration
	length   int
}

// NewRedisProvider builds a Redis-backed OTP provider.
func NewRedisProvider(client *redis.Client, notifier notification.Notifier, ttl time.Duration, length int) *RedisProvider {
	return &RedisProvider{client: client, notifier: notifier, ttl: ttl, length: length}
}

// Issue generates a fresh code, records it under the phone key (replacing any
// prior code) and dispatches it. The code stays recorded even if dispatch
// fails, so a redelivery attempt does not invalidate it.
func (p *RedisProvider) Issue(ctx context.Context, phone string) error {
	code, err := GenerateCode(p.length)
	if err != nil {
		return err
	}
	if err := p.client.Set(ctx, keyPrefix+phone, code, p.ttl).Err(); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}
	if err := p.notifier.Send(ctx, notification.Message{To: phone, Body: smsBody(code, p.ttl)}); err != nil {
		return fmt.Errorf("dispatch otp: %w", err)
	}
	return nil
}

// Check reports whether code matches the outstanding code for phone. A match
// deletes the key; a mismatch or an expired key leaves state untouched.
func (p *RedisProvider) Check(ctx context.Context, phone, code string) (bool, error) {
	stored, err := p.client.Get(ctx, keyPrefix+phone).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load otp: %w", err)
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return false, nil
	}
	if err := p.client.Del(ctx, keyPrefix+phone).Err(); err != nil {
		return false, fmt.Errorf("consume otp: %w", err)
	}
	return true, nil
}
