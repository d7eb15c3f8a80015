// Package auth implements registration, login, and token verification for
// student accounts. Passwords are stored as bcrypt hashes; sessions are
// stateless HS256 JWTs.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mcggEz/gradalyze/internal/users"
)

const minPasswordLength = 8

// RegisterCommand carries a new account registration.
type RegisterCommand struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	Name          string `json:"name"`
	StudentNumber string `json:"student_number"`
	Program       string `json:"program"`
}

// Session is an authenticated session: the signed token and the profile it
// belongs to.
type Session struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      *users.User `json:"user"`
}

// Claims are the JWT claims carried by a session token.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}
