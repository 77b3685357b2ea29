package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// Perfil com acesso às rotinas administrativas
const RoleAdmin = "admin"

// Claims do token de sessão emitido pelo provedor de identidade.
// O ID do dono vem em Subject.
type Claims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

func (c *Claims) OwnerID() string {
	if c == nil {
		return ""
	}
	return c.Subject
}
