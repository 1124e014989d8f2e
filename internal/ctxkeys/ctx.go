package ctxkeys

import (
	"context"

	"github.com/frostlinehq/frostline/internal/config"
	"github.com/frostlinehq/frostline/internal/gate"
	"github.com/frostlinehq/frostline/internal/model"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const (
	UserKey      contextKey = "user"
	ViewerKey    contextKey = "viewer"
	ConfigKey    contextKey = "config"
	CSRFTokenKey contextKey = "csrf_token"
)

func User(ctx context.Context) *model.User {
	user, _ := ctx.Value(UserKey).(*model.User)
	return user
}

func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, UserKey, user)
}

// Viewer returns the gate snapshot for this request, or nil when no
// session was resolved.
func Viewer(ctx context.Context) *gate.Viewer {
	viewer, _ := ctx.Value(ViewerKey).(*gate.Viewer)
	return viewer
}

func WithViewer(ctx context.Context, viewer *gate.Viewer) context.Context {
	return context.WithValue(ctx, ViewerKey, viewer)
}

func Config(ctx context.Context) *config.Config {
	cfg, _ := ctx.Value(ConfigKey).(*config.Config)
	return cfg
}

func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, ConfigKey, cfg)
}

func CSRFToken(ctx context.Context) string {
	token, _ := ctx.Value(CSRFTokenKey).(string)
	return token
}

func WithCSRFToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, CSRFTokenKey, token)
}
