package shell

import (
	"sync"

	"github.com/STAR-173/prms-admin-gateway/domain"
)

// RouteNavigator is the shell's navigation surface: one current route,
// replaced in place (no history). The gateway's invalidation handler writes
// to it from request goroutines, so it is mutex-guarded.
type RouteNavigator struct {
	mu      sync.RWMutex
	current string
}

func NewRouteNavigator(initial string) *RouteNavigator {
	return &RouteNavigator{current: initial}
}

func (n *RouteNavigator) Replace(route string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.current = route
}

func (n *RouteNavigator) Current() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.current
}

var _ domain.Navigator = (*RouteNavigator)(nil)
