package middleware

import (
	"context"
	"fmt"
	"net/http"

	"snatchup/globals"
	"snatchup/kv"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

// JWT claims
type Claims struct {
	Email  string `json:"email"`
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// Auth guards routes with bearer tokens. A token must carry a valid
// signature AND match the session registry entry for its user, so logging
// out revokes it immediately rather than at JWT expiry.
type Auth struct {
	Sessions kv.Store
}

func NewAuth(sessions kv.Store) *Auth {
	return &Auth{Sessions: sessions}
}

func (a *Auth) Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		header := r.Header.Get("Authorization")
		if header == "" {
			http.Error(w, "Missing token", http.StatusUnauthorized)
			return
		}

		if len(header) < 8 || header[:7] != "Bearer " {
			http.Error(w, "Invalid token format", http.StatusUnauthorized)
			return
		}

		raw := header[7:]
		claims, err := ValidateJWT(raw)
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		stored, err := a.Sessions.Get(r.Context(), globals.SessionKey(claims.UserID))
		if err != nil || string(stored) != raw {
			http.Error(w, "Session expired", http.StatusUnauthorized)
			return
		}

		// Store UserID in context
		ctx := context.WithValue(r.Context(), globals.UserIDKey, claims.UserID)
		next(w, r.WithContext(ctx), ps)
	}
}

// OptionalAuth attaches the user id when a live session token is presented
// and proceeds anonymously otherwise.
func (a *Auth) OptionalAuth(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		header := r.Header.Get("Authorization")
		if len(header) >= 8 && header[:7] == "Bearer " {
			raw := header[7:]
			if claims, err := ValidateJWT(raw); err == nil {
				stored, err := a.Sessions.Get(r.Context(), globals.SessionKey(claims.UserID))
				if err == nil && string(stored) == raw {
					r = r.WithContext(context.WithValue(r.Context(), globals.UserIDKey, claims.UserID))
				}
			}
		}
		// Proceed regardless of token state
		next(w, r, ps)
	}
}

// ValidateJWT parses and verifies a raw token string, without the Bearer
// prefix.
func ValidateJWT(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("invalid token")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return globals.JwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("unauthorized")
	}
	return claims, nil
}
