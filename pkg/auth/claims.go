package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sadmanhossain/urbanland-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID         uuid.UUID
	Role           enums.Role
	OwnerProfileID *uuid.UUID
	JTI            string
}

// AccessTokenClaims represents the typed JWT issued to clients. The
// owner_profile_id claim is present only when the user has a profile, so
// owner-scoped handlers can resolve their records without another lookup.
type AccessTokenClaims struct {
	UserID         uuid.UUID  `json:"user_id"`
	Role           enums.Role `json:"role"`
	OwnerProfileID *uuid.UUID `json:"owner_profile_id,omitempty"`
	jwt.RegisteredClaims
}
