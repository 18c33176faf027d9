// Package handler provides the handler interface and types for action dispatch.
package handler

import "github.com/dshills/killring/internal/dispatcher/execctx"

// Handler processes a specific action or set of actions.
type Handler interface {
	// Handle executes the action and returns a result.
	Handle(action Action, ctx *execctx.ExecutionContext) Result

	// CanHandle returns true if this handler can process the action.
	CanHandle(actionName string) bool
}

// Func adapts a plain function to Handler for a single action name.
type Func struct {
	// ActionName is the name of the action this handler processes.
	ActionName string

	// Fn is the handler function.
	Fn func(action Action, ctx *execctx.ExecutionContext) Result
}

// Handle implements Handler.Handle.
func (h *Func) Handle(action Action, ctx *execctx.ExecutionContext) Result {
	if h.Fn == nil {
		return Errorf("handler function is nil")
	}
	return h.Fn(action, ctx)
}

// CanHandle implements Handler.CanHandle.
func (h *Func) CanHandle(actionName string) bool {
	return actionName == h.ActionName
}

// NamespaceHandler handles all actions within a namespace.
// A namespace is the prefix before the first dot (e.g., "killring" in "killring.yank").
type NamespaceHandler interface {
	// HandleAction handles an action within this namespace.
	HandleAction(action Action, ctx *execctx.ExecutionContext) Result

	// CanHandle returns true if this handler can process the action.
	CanHandle(actionName string) bool

	// Namespace returns the namespace prefix.
	Namespace() string
}

type namespaceAdapter struct {
	h NamespaceHandler
}

// NewNamespaceAdapter creates a Handler from a NamespaceHandler.
func NewNamespaceAdapter(h NamespaceHandler) Handler {
	return &namespaceAdapter{h: h}
}

func (a *namespaceAdapter) Handle(action Action, ctx *execctx.ExecutionContext) Result {
	return a.h.HandleAction(action, ctx)
}

func (a *namespaceAdapter) CanHandle(actionName string) bool {
	return a.h.CanHandle(actionName)
}
