package cart

import "context"

// Store persists the session-scoped cart document. The session/cart
// storage mechanics live outside the engine; the engine only ever does
// a full get-transform-set cycle.
type Store interface {
	Get(ctx context.Context, sessionKey string) (CartState, error)
	Set(ctx context.Context, sessionKey string, state CartState) error
	Delete(ctx context.Context, sessionKey string) error
}
