package identity

import "context"

type contextKey string

const identityKey contextKey = "identity"

// Identity is the caller resolved from a verified bearer token.
type Identity struct {
	UserID string
	Email  string
	Name   string
}

func NewContext(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func FromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey).(*Identity)
	if !ok || id == nil || id.UserID == "" {
		return nil, false
	}
	return id, true
}

// UserID returns the caller id or "" for anonymous requests.
func UserID(ctx context.Context) string {
	if id, ok := FromContext(ctx); ok {
		return id.UserID
	}
	return ""
}
