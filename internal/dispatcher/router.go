package dispatcher

import (
	"sort"
	"strings"
	"sync"

	"github.com/dshills/killring/internal/dispatcher/handler"
)

// Router resolves action names to handlers. Namespace handlers are checked
// first, then handlers registered for an exact name.
type Router struct {
	mu sync.RWMutex

	// Namespace handlers (e.g., "killring" handles "killring.*")
	namespaces map[string]handler.NamespaceHandler

	// Handlers for exact action names
	exact map[string]handler.Handler
}

// NewRouter creates a new action router.
func NewRouter() *Router {
	return &Router{
		namespaces: make(map[string]handler.NamespaceHandler),
		exact:      make(map[string]handler.Handler),
	}
}

// RegisterNamespace registers a handler for all actions in its namespace.
func (r *Router) RegisterNamespace(h handler.NamespaceHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.namespaces[h.Namespace()] = h
}

// UnregisterNamespace removes a namespace handler.
func (r *Router) UnregisterNamespace(namespace string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.namespaces, namespace)
}

// Register registers a handler for an exact action name, replacing any
// previous one.
func (r *Router) Register(actionName string, h handler.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exact[actionName] = h
}

// Unregister removes the handler for an exact action name.
func (r *Router) Unregister(actionName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.exact, actionName)
}

// Route finds the handler for an action. Returns nil if none is found.
func (r *Router) Route(actionName string) handler.Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if ns := extractNamespace(actionName); ns != "" {
		if h, ok := r.namespaces[ns]; ok && h.CanHandle(actionName) {
			return handler.NewNamespaceAdapter(h)
		}
	}
	return r.exact[actionName]
}

// CanRoute returns true if the router can handle the action.
func (r *Router) CanRoute(actionName string) bool {
	return r.Route(actionName) != nil
}

// Namespaces returns all registered namespace names, sorted.
func (r *Router) Namespaces() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.namespaces))
	for name := range r.namespaces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// extractNamespace extracts the namespace from "namespace.action" format.
// Returns empty string if no namespace separator is found.
func extractNamespace(actionName string) string {
	idx := strings.Index(actionName, ".")
	if idx < 0 {
		return ""
	}
	return actionName[:idx]
}

// BuildActionName builds a full action name from namespace and action.
// For "killring" and "yank", returns "killring.yank".
func BuildActionName(namespace, action string) string {
	if namespace == "" {
		return action
	}
	return namespace + "." + action
}
