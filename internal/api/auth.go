package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var errTokenInvalid = errors.New("invalid token")

// claims accepts the role either as a single "role" or a "roles" list.
type claims struct {
	jwt.RegisteredClaims
	Role  string   `json:"role"`
	Roles []string `json:"roles"`
}

func (c *claims) has(role string) bool {
	if c.Role == role {
		return true
	}
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func parseToken(tokenString, secret string) (*claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &claims{}, func(_ *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errTokenInvalid, err)
	}
	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return nil, errTokenInvalid
	}
	return c, nil
}

// requireRole admits requests carrying a bearer token with role. With no
// secret configured every request is admitted.
func (s *Server) requireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if s.cfg.JWTSecret == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				writeUnauthorized(w, "missing bearer token")
				return
			}
			c, err := parseToken(token, s.cfg.JWTSecret)
			if err != nil {
				s.requestLog(r).Warn("Rejected token: %v", err)
				writeUnauthorized(w, "invalid token")
				return
			}
			if !c.has(role) {
				s.requestLog(r).Warn("Subject %q lacks role %q", c.Subject, role)
				writeForbidden(w, "missing role "+role)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
