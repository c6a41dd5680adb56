package identity

import "time"

// Role is the flat access role assigned at registration.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// VerificationStatus tracks whether phone ownership has been proven via OTP.
// It moves from Unverified to Verified exactly once and never reverts.
type VerificationStatus string

const (
	Unverified VerificationStatus = "UNVERIFIED"
	Verified   VerificationStatus = "VERIFIED"
)

// User is an identity record keyed by canonical phone number.
type User struct {
	ID           string
	FullName     string
	Phone        string
	PasswordHash []byte
	Role         Role
	Status       VerificationStatus
	CreatedAt    time.Time
}

// RegisterInput carries the fields required to onboard a user.
type RegisterInput struct {
	FullName string
	Phone    string
	Password string
}
