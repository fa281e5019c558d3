package ctxutil

import "context"

type authDataKey struct{}

// AuthData is the signed-in author attached by the auth middleware.
type AuthData struct {
	UserID   string
	Username string
	Token    string
}

func WithAuthData(ctx context.Context, ad *AuthData) context.Context {
	return context.WithValue(ctx, authDataKey{}, ad)
}

func GetAuthData(ctx context.Context) *AuthData {
	if ad, ok := ctx.Value(authDataKey{}).(*AuthData); ok {
		return ad
	}
	return nil
}
