package guard

import (
	"context"

	"github.com/STAR-173/prms-admin-gateway/domain"
)

// Guard gates protected screens on the presence of a session. It is a UX
// convenience, not a security boundary: it never validates the token, so a
// stale token admits and is only discovered by the first 401.
type Guard struct {
	store domain.SessionStore
	nav   domain.Navigator
}

func New(store domain.SessionStore, nav domain.Navigator) *Guard {
	return &Guard{store: store, nav: nav}
}

// Admit reports whether a protected screen may render. With no session it
// redirects to the login route and returns false, so the caller renders
// nothing at all while the redirect is pending.
func (g *Guard) Admit(ctx context.Context) bool {
	sess, err := g.store.Load(ctx)
	if err != nil || sess == nil || sess.Token == "" {
		if g.nav.Current() != domain.RouteLogin {
			g.nav.Replace(domain.RouteLogin)
		}
		return false
	}
	return true
}
