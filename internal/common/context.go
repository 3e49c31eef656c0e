package common

import "context"

type contextKey string

// ActorIDKey carries the authenticated actor identity through the request
// context. The core treats it as an opaque string.
const ActorIDKey contextKey = "actor_id"

func WithActorID(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, ActorIDKey, actorID)
}

// GetActorIDFromContext extracts the actor identity from the request context.
func GetActorIDFromContext(ctx context.Context) (string, bool) {
	actorID, ok := ctx.Value(ActorIDKey).(string)
	return actorID, ok && actorID != ""
}
