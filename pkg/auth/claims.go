package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// AdminRole is the only role the dashboard backend issues today.
const AdminRole = "admin"

// AdminSessionClaims is the typed JWT carried in the admin session cookie.
type AdminSessionClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}
