package portalauth

import "context"

type clientIPContextKey struct{}
type surfaceIDContextKey struct{}

// WithClientIP attaches the caller's IP address to ctx. The Engine stamps
// it on audit events.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPContextKey{}, ip)
}

// WithSurfaceID attaches the ID of the portal shell driving the call, so
// audit events can say which mounted surface triggered a mutation.
func WithSurfaceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, surfaceIDContextKey{}, id)
}

func clientIPFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	ip, _ := ctx.Value(clientIPContextKey{}).(string)
	return ip
}

func surfaceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	id, _ := ctx.Value(surfaceIDContextKey{}).(string)
	return id
}
