package gateway

import (
	"context"
	"log"
	"sync"

	"github.com/STAR-173/prms-admin-gateway/domain"
)

// Invalidator centralizes the "session is no longer valid" event: clear the
// store, send the operator back to login. Screens never check for expiry
// themselves; they only ever see this fire.
type Invalidator struct {
	mu    sync.Mutex
	store domain.SessionStore
	nav   domain.Navigator
}

func NewInvalidator(store domain.SessionStore, nav domain.Navigator) *Invalidator {
	return &Invalidator{store: store, nav: nav}
}

// Invalidate clears the credential store and redirects to the login route
// unless the operator is already there. Safe to call from several in-flight
// requests at once: later calls re-clear an empty store and skip the
// redirect because the first one already moved the navigator.
func (i *Invalidator) Invalidate(ctx context.Context) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if err := i.store.Clear(ctx); err != nil {
		log.Printf("SESSION_CLEAR_FAILED: error=%v", err)
	}
	if i.nav.Current() != domain.RouteLogin {
		i.nav.Replace(domain.RouteLogin)
	}
}
