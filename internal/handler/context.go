package handlers

import (
	"context"
	"net/http"
	"tourguide/internal/models"
)

type identityKey struct{}

func WithIdentity(ctx context.Context, identity *models.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

func IdentityFromContext(ctx context.Context) (*models.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(*models.Identity)
	return identity, ok && identity != nil
}

// currentIdentity answers 401 itself when the request carries no identity.
func currentIdentity(w http.ResponseWriter, r *http.Request) (*models.Identity, bool) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return nil, false
	}
	return identity, true
}
