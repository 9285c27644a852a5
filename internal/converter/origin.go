package converter

import "context"

type originKey struct{}

// WithOrigin tags ctx with the name of the input a conversion came from, usually a file path.
func WithOrigin(ctx context.Context, origin string) context.Context {
	return context.WithValue(ctx, originKey{}, origin)
}

// Origin returns the value set by WithOrigin, or "".
func Origin(ctx context.Context) string {
	origin, _ := ctx.Value(originKey{}).(string)
	return origin
}
