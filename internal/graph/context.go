package graph

import (
	"context"

	"github.com/freementors/backend/internal/models"
)

type viewerKey struct{}

// WithViewer stores the authenticated user in the execution context. A nil
// user is stored as an anonymous viewer.
func WithViewer(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, viewerKey{}, user)
}

// ViewerFrom returns the authenticated user, or nil for anonymous requests.
func ViewerFrom(ctx context.Context) *models.User {
	user, _ := ctx.Value(viewerKey{}).(*models.User)
	return user
}
