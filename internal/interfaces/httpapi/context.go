package httpapi

import (
	"context"

	"github.com/riskibarqy/fantasy-auction/internal/domain/team"
	"github.com/riskibarqy/fantasy-auction/internal/domain/user"
)

type contextKey string

const (
	principalContextKey contextKey = "auth_principal"
	teamContextKey      contextKey = "auth_team"
)

func withPrincipal(ctx context.Context, p user.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

func principalFromContext(ctx context.Context) (user.Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(user.Principal)
	return p, ok
}

func withTeam(ctx context.Context, t team.Team) context.Context {
	return context.WithValue(ctx, teamContextKey, t)
}

func teamFromContext(ctx context.Context) (team.Team, bool) {
	t, ok := ctx.Value(teamContextKey).(team.Team)
	return t, ok
}
