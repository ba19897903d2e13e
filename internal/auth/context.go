package auth

import "context"

type (
	contextKey struct{}
	holderKey  struct{}
)

// UserContext identifies the signed-in user for the rest of the request.
type UserContext struct {
	UserID   int64
	Username string
}

// WithUser stores uc in ctx. A holder installed further out by WithHolder
// receives a copy too.
func WithUser(ctx context.Context, uc UserContext) context.Context {
	if h, ok := ctx.Value(holderKey{}).(*UserContext); ok && h != nil {
		*h = uc
	}
	return context.WithValue(ctx, contextKey{}, uc)
}

// WithHolder installs h so that outer middleware can see the user resolved
// by inner middleware once the request returns.
func WithHolder(ctx context.Context, h *UserContext) context.Context {
	return context.WithValue(ctx, holderKey{}, h)
}

func FromContext(ctx context.Context) (UserContext, bool) {
	uc, ok := ctx.Value(contextKey{}).(UserContext)
	return uc, ok
}

func UserID(ctx context.Context) int64 {
	uc, ok := FromContext(ctx)
	if !ok {
		return 0
	}
	return uc.UserID
}
