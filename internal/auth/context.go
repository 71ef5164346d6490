package auth

import "context"

type callerKey struct{}

func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

func CallerFromContext(ctx context.Context) (Caller, bool) {
	c, ok := ctx.Value(callerKey{}).(Caller)
	return c, ok && c.ID != ""
}

// CallerID returns the authenticated caller's id, if any.
func CallerID(ctx context.Context) (string, bool) {
	c, ok := CallerFromContext(ctx)
	return c.ID, ok
}

// ContextIdentity reads the caller the JWT middleware attached to the request context.
type ContextIdentity struct{}

func (ContextIdentity) CallerID(ctx context.Context) (string, bool) {
	return CallerID(ctx)
}
