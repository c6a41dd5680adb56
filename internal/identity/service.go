package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Hasher is the one-way credential hash used for stored passwords.
type Hasher interface {
	Hash(raw string) ([]byte, error)
	Verify(raw string, digest []byte) bool
}

// OTPProvider issues and checks one-time passcodes keyed by canonical phone.
// Check must not consume the outstanding code on a mismatch.
type OTPProvider interface {
	Issue(ctx context.Context, phone string) error
	Check(ctx context.Context, phone, code string) (bool, error)
}

// TokenIssuer signs session tokens carrying the user's identity claims.
type TokenIssuer interface {
	Issue(userID, phone, role string) (string, error)
}

const (
	msgLoggedIn      = "Logged In"
	msgUserNotFound  = "User not found"
	msgNoUserFound   = "No user found."
	msgOTPMismatch   = "OTP didn't match"
	msgDuplicate     = "Phone already registered"
	msgInvalidPhone  = "Invalid phone number"
	msgSMSSent       = "Verification SMS sent"
	msgSMSSendFailed = "Failed to send an SMS. Please try again"
)

const minPasswordLen = 6

// Service orchestrates registration, login, OTP verification and password
// reset. It holds no state of its own; everything durable lives in the
// repository and the OTP provider.
type Service struct {
	repo   Repository
	hasher Hasher
	otp    OTPProvider
	tokens TokenIssuer
	prefix string
	logger *slog.Logger
}

// NewService wires the authentication service with its collaborators. prefix
// is the country prefix applied to every caller-supplied phone number.
func NewService(repo Repository, hasher Hasher, otp OTPProvider, tokens TokenIssuer, prefix string, logger *slog.Logger) *Service {
	return &Service{repo: repo, hasher: hasher, otp: otp, tokens: tokens, prefix: prefix, logger: logger}
}

// Register creates an unverified user and triggers OTP delivery to the phone.
// The OTP send is best-effort: a delivery failure never fails registration.
// No token is issued until the phone number has been verified.
func (s *Service) Register(ctx context.Context, in RegisterInput) (Response, error) {
	phone, err := CanonicalPhone(s.prefix, in.Phone)
	if err != nil {
		return Failure(msgInvalidPhone), nil
	}
	if len(in.Password) < minPasswordLen {
		return Failure(fmt.Sprintf("password must be at least %d characters", minPasswordLen)), nil
	}

	if _, err := s.repo.FindByPhone(ctx, phone); err == nil {
		return Failure(msgDuplicate), nil
	} else if !errors.Is(err, ErrNotFound) {
		return Response{}, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return Response{}, fmt.Errorf("hash password: %w", err)
	}

	user := User{
		ID:           uuid.NewString(),
		FullName:     in.FullName,
		Phone:        phone,
		PasswordHash: hash,
		Role:         RoleUser,
		Status:       Unverified,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, ErrDuplicatePhone) {
			return Failure(msgDuplicate), nil
		}
		return Response{}, fmt.Errorf("create user: %w", err)
	}

	if err := s.otp.Issue(ctx, phone); err != nil {
		s.logger.Warn("otp delivery failed after registration", "phone", phone, "error", err)
	}

	return Registered(user.FullName), nil
}

// Login authenticates a password and, when the phone number is verified,
// issues a session token. An unverified user gets a successful response with
// no token. Missing user and wrong password return the same message so the
// caller cannot tell which part was wrong.
func (s *Service) Login(ctx context.Context, phone, password string) (Response, error) {
	canonical, err := CanonicalPhone(s.prefix, phone)
	if err != nil {
		return Failure(msgUserNotFound), nil
	}

	user, err := s.repo.FindByPhone(ctx, canonical)
	if errors.Is(err, ErrNotFound) {
		return Failure(msgUserNotFound), nil
	} else if err != nil {
		return Response{}, fmt.Errorf("lookup user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return Failure(msgUserNotFound), nil
	}

	if user.Status == Unverified {
		return UnverifiedResponse(user.FullName), nil
	}

	token, err := s.tokens.Issue(user.ID, user.Phone, string(user.Role))
	if err != nil {
		return Response{}, fmt.Errorf("issue token: %w", err)
	}
	return Success(token, user.FullName, msgLoggedIn), nil
}

// SendOTP dispatches a fresh code to a registered phone number. It never
// returns an error for an unknown number or a delivery failure; the returned
// message is the only signal. Only infrastructure faults propagate.
func (s *Service) SendOTP(ctx context.Context, phone string) (string, error) {
	canonical, err := CanonicalPhone(s.prefix, phone)
	if err != nil {
		return msgSMSSendFailed, nil
	}

	if _, err := s.repo.FindByPhone(ctx, canonical); err != nil {
		if errors.Is(err, ErrNotFound) {
			// Only send SMS to phones that belong to an account.
			return msgSMSSendFailed, nil
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	if err := s.otp.Issue(ctx, canonical); err != nil {
		s.logger.Warn("otp delivery failed", "phone", canonical, "error", err)
		return msgSMSSendFailed, nil
	}
	return msgSMSSent, nil
}

// VerifyOTP checks the submitted code and, on match, marks the user verified
// and issues a session token. Verification for an unknown phone is a contract
// violation and propagates ErrNotFound. A mismatch leaves the outstanding
// code valid so the user can retry without requesting a new one.
func (s *Service) VerifyOTP(ctx context.Context, phone, code string) (Response, error) {
	canonical, err := CanonicalPhone(s.prefix, phone)
	if err != nil {
		return Response{}, ErrNotFound
	}

	user, err := s.repo.FindByPhone(ctx, canonical)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Response{}, ErrNotFound
		}
		return Response{}, fmt.Errorf("lookup user: %w", err)
	}

	ok, err := s.otp.Check(ctx, canonical, code)
	if err != nil {
		return Response{}, fmt.Errorf("check otp: %w", err)
	}
	if !ok {
		return CodeRejected(), nil
	}

	if user.Status != Verified {
		user.Status = Verified
		if err := s.repo.Update(ctx, user); err != nil {
			return Response{}, fmt.Errorf("update user: %w", err)
		}
	}

	token, err := s.tokens.Issue(user.ID, user.Phone, string(user.Role))
	if err != nil {
		return Response{}, fmt.Errorf("issue token: %w", err)
	}
	return Success(token, user.FullName, ""), nil
}

// ChangePassword resets the stored hash after proving phone ownership with a
// valid OTP. No prior session is required; the OTP is the authorization.
func (s *Service) ChangePassword(ctx context.Context, phone, newPassword, code string) (Response, error) {
	canonical, err := CanonicalPhone(s.prefix, phone)
	if err != nil {
		return Failure(msgNoUserFound), nil
	}

	user, err := s.repo.FindByPhone(ctx, canonical)
	if errors.Is(err, ErrNotFound) {
		return Failure(msgNoUserFound), nil
	} else if err != nil {
		return Response{}, fmt.Errorf("lookup user: %w", err)
	}

	ok, err := s.otp.Check(ctx, canonical, code)
	if err != nil {
		return Response{}, fmt.Errorf("check otp: %w", err)
	}
	if !ok {
		return Failure(msgOTPMismatch), nil
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return Response{}, fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = hash

	if err := s.repo.Update(ctx, user); err != nil {
		return Response{}, fmt.Errorf("update user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID, user.Phone, string(user.Role))
	if err != nil {
		return Response{}, fmt.Errorf("issue token: %w", err)
	}
	return Success(token, user.FullName, ""), nil
}
