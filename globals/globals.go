package globals

import (
	"os"
)

var JwtSecret = []byte(jwtSecret())

func jwtSecret() string {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return s
	}
	return "snatchup_dev_secret" // override via JWT_SECRET in production
}

// Context keys
type ContextKey string

const UserIDKey ContextKey = "userId"

// SessionKey is the registry key holding a user's live session token.
func SessionKey(userID string) string {
	return "token:" + userID
}
