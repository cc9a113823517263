package globals

import (
	"context"
	"os"
)

var (
	JwtSecret = []byte("change_me_in_production")

	// AppURL is the public base URL used in lookup links and emails.
	AppURL = "http://localhost:4000"
)

// LoadEnv picks up configuration after godotenv has run in main.
func LoadEnv() {
	if v := os.Getenv("JWT_SECRET"); v != "" {
		JwtSecret = []byte(v)
	}
	if v := os.Getenv("APP_URL"); v != "" {
		AppURL = v
	}
}

// Context keys
type ContextKey string

const UserIDKey ContextKey = "userId"
const RoleKey ContextKey = "role"

var Ctx = context.Background()
