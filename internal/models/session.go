package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims identifies one visitor's cart. The session id doubles as
// the suffix of every storage key belonging to that visitor.
type SessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}
