package auth

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// StaticTokenValidator resolves pre-shared service tokens from configuration.
// It is meant for service-to-service calls inside the platform; end-user
// tokens are validated upstream by the gateway.
type StaticTokenValidator struct {
	users map[string]UserContext
}

// NewStaticTokenValidator creates a validator over a token -> user mapping.
func NewStaticTokenValidator(users map[string]UserContext) *StaticTokenValidator {
	return &StaticTokenValidator{users: users}
}

// ValidateToken looks the token up in the static mapping.
func (v *StaticTokenValidator) ValidateToken(ctx context.Context, token string) (*UserContext, error) {
	user, ok := v.users[token]
	if !ok {
		return nil, fmt.Errorf("unknown token")
	}
	user.Token = token
	return &user, nil
}

// ParseStaticTokens parses a "token:userID:role[|role...]" comma-separated
// list, the format used by the AUTH_TOKENS environment variable.
func ParseStaticTokens(spec string) (map[string]UserContext, error) {
	users := make(map[string]UserContext)
	for _, entry := range strings.Split(spec, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		parts := strings.SplitN(entry, ":", 3)
		if len(parts) < 2 {
			return nil, fmt.Errorf("invalid token entry %q", entry)
		}

		userID, err := strconv.ParseUint(parts[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid user id in token entry %q: %w", entry, err)
		}

		user := UserContext{UserID: userID}
		if len(parts) == 3 && parts[2] != "" {
			user.Roles = strings.Split(parts[2], "|")
		}
		users[parts[0]] = user
	}
	return users, nil
}
