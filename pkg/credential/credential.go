package credential

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role is the coarse permission level carried in the credential.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleSubadmin Role = "subadmin"
	RoleUser     Role = "user"
)

// Valid reports whether the role is one the backend issues.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSubadmin, RoleUser:
		return true
	}
	return false
}

// IsStaff reports whether the role grants access to the admin surfaces.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleSubadmin
}

// Identity is the decoded view of an authenticated principal. A nil ExpiresAt
// means the credential never expires.
type Identity struct {
	SubjectID string
	Email     string
	Role      Role
	ExpiresAt *time.Time
}

// ExpiredAt reports whether the identity's credential has expired relative to
// the given wall-clock time.
func (id Identity) ExpiredAt(now time.Time) bool {
	return id.ExpiresAt != nil && id.ExpiresAt.Before(now)
}

type tokenClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Decode extracts the identity claims from a raw bearer token without
// verifying its signature. It returns ErrMalformedCredential when the token
// cannot be parsed, carries no subject, or names an unknown role. Expiry is
// NOT checked here; callers decide what a stale identity means.
func Decode(raw string) (Identity, error) {
	claims := &tokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return Identity{}, errors.Join(ErrMalformedCredential, err)
	}

	if claims.Subject == "" {
		return Identity{}, ErrMalformedCredential
	}

	role := Role(claims.Role)
	if role == "" {
		role = RoleUser
	}
	if !role.Valid() {
		return Identity{}, ErrMalformedCredential
	}

	identity := Identity{
		SubjectID: claims.Subject,
		Email:     claims.Email,
		Role:      role,
	}
	if claims.ExpiresAt != nil {
		expiresAt := claims.ExpiresAt.Time
		identity.ExpiresAt = &expiresAt
	}

	return identity, nil
}
