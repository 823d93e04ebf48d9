package usecase

import (
	"context"

	"github.com/stitchcraft/stitchcraft/internal/domain/model"
)

type actorKey struct{}

// WithActor stores the resolved caller on the context.
func WithActor(ctx context.Context, actor *model.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFrom returns the caller stored by WithActor.
func ActorFrom(ctx context.Context) (*model.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(*model.Actor)
	return actor, ok && actor != nil
}
