// internal/common/auth/jwt.go
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"tripscout/internal/common/config"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

// SubjectKey is the request-context key holding the authenticated subject.
const SubjectKey contextKey = "auth_subject"

// Validator validates bearer tokens on protected endpoints. Token issuing is
// handled by the identity service, not here.
type Validator struct {
	secret []byte
	issuer string
}

func NewValidator(cfg config.AuthConfig) *Validator {
	return &Validator{
		secret: []byte(cfg.JWTSecret),
		issuer: cfg.Issuer,
	}
}

// Validate parses and checks a bearer token, returning its subject.
func (v *Validator) Validate(tokenString string) (string, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256"})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("token subject: %w", err)
	}
	return sub, nil
}

// Middleware rejects requests without a valid bearer token.
func (v *Validator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			http.Error(w, `{"error":"missing bearer token"}`, http.StatusUnauthorized)
			return
		}

		sub, err := v.Validate(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			http.Error(w, `{"error":"invalid token"}`, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), SubjectKey, sub)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
