package app

import "context"

type ctxKey struct{}

// FromContext returns the App stored by WithApp, or nil
func FromContext(ctx context.Context) *App {
	a, _ := ctx.Value(ctxKey{}).(*App)
	return a
}

// WithApp returns a copy of ctx carrying a
func WithApp(ctx context.Context, a *App) context.Context {
	return context.WithValue(ctx, ctxKey{}, a)
}
