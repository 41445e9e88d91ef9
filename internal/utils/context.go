package utils

import "context"

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	UserPhoneKey contextKey = "phone"
	UserRoleKey  contextKey = "role"
)

// SetUserContext sets user info into context (called by middleware)
func SetUserContext(ctx context.Context, id, phone, role string) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, id)
	ctx = context.WithValue(ctx, UserPhoneKey, phone)
	ctx = context.WithValue(ctx, UserRoleKey, role)
	return ctx
}

// GetUserIDFromContext retrieves userID safely
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserIDKey).(string)
	if id == "" {
		return "", false
	}
	return id, ok
}

func GetUserPhoneFromContext(ctx context.Context) string {
	phone, _ := ctx.Value(UserPhoneKey).(string)
	return phone
}

func GetUserRoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(UserRoleKey).(string)
	return role
}
