package dispatcher

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/dshills/killring/internal/dispatcher/execctx"
	"github.com/dshills/killring/internal/dispatcher/handler"
	"github.com/dshills/killring/internal/killring"
	"github.com/dshills/killring/internal/logging"
)

// Dispatcher routes actions to handlers and coordinates execution.
type Dispatcher struct {
	// exec serializes Dispatch calls.
	exec sync.Mutex

	mu sync.RWMutex

	router *Router

	// Subsystems
	editor execctx.EditorInterface
	yanker execctx.YankerInterface
	picker killring.Picker
	logger *logging.Logger

	config  Config
	metrics *Metrics

	preHooks  []PreDispatchHook
	postHooks []PostDispatchHook
}

// New creates a new dispatcher with the given configuration.
func New(config Config) *Dispatcher {
	d := &Dispatcher{
		router: NewRouter(),
		logger: logging.Null(),
		config: config,
	}
	if config.EnableMetrics {
		d.metrics = NewMetrics()
	}
	return d
}

// NewWithDefaults creates a new dispatcher with default configuration.
func NewWithDefaults() *Dispatcher {
	return New(DefaultConfig())
}

// SetEditor sets the document.
func (d *Dispatcher) SetEditor(editor execctx.EditorInterface) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.editor = editor
}

// SetYanker sets the kill/yank engine.
func (d *Dispatcher) SetYanker(y execctx.YankerInterface) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.yanker = y
}

// SetPicker sets the picker used by browse actions that name no entry.
func (d *Dispatcher) SetPicker(p killring.Picker) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.picker = p
}

// SetLogger sets the logger handed to handlers.
func (d *Dispatcher) SetLogger(l *logging.Logger) {
	if l == nil {
		l = logging.Null()
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.logger = l.WithComponent("dispatcher")
}

// Dispatch executes an action synchronously with a background context.
func (d *Dispatcher) Dispatch(action handler.Action) handler.Result {
	return d.DispatchContext(context.Background(), action)
}

// DispatchContext executes an action synchronously. Concurrent callers are
// serialized.
func (d *Dispatcher) DispatchContext(ctx context.Context, action handler.Action) handler.Result {
	if action.Name == "" {
		return handler.Error(ErrInvalidAction)
	}

	d.exec.Lock()
	defer d.exec.Unlock()

	startTime := time.Now()
	ectx := d.buildContext(ctx)

	if action.Count > 0 {
		ectx.Count = action.Count
		if limit := d.config.MaxRepeatCount; limit > 0 && ectx.Count > limit {
			ectx.Count = limit
		}
	}

	if !d.runPreHooks(&action, ectx) {
		return handler.Error(ErrActionCancelled).WithMessage("cancelled by hook")
	}

	h := d.router.Route(action.Name)
	if h == nil {
		return handler.Error(fmt.Errorf("%w: %s", ErrNoHandler, action.Name))
	}

	var result handler.Result
	if d.config.RecoverFromPanic {
		result = d.executeWithRecovery(h, action, ectx)
	} else {
		result = h.Handle(action, ectx)
	}

	d.runPostHooks(&action, ectx, &result)

	if d.metrics != nil {
		d.metrics.RecordDispatch(action.Name, time.Since(startTime), result.Status)
	}
	if result.IsError() {
		ectx.Logger.Debug("%s failed: %v", action.Name, result.Error)
	}
	return result
}

// executeWithRecovery executes a handler with panic recovery.
func (d *Dispatcher) executeWithRecovery(h handler.Handler, action handler.Action, ctx *execctx.ExecutionContext) (result handler.Result) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)

			result = handler.Error(fmt.Errorf("%w in %s: %v", ErrPanic, action.Name, r))
			ctx.Logger.Error("handler panic for %s: %v\n%s", action.Name, r, stack[:n])

			if d.metrics != nil {
				d.metrics.RecordPanic(action.Name)
			}
		}
	}()

	return h.Handle(action, ctx)
}

func (d *Dispatcher) buildContext(ctx context.Context) *execctx.ExecutionContext {
	d.mu.RLock()
	defer d.mu.RUnlock()

	ectx := execctx.New()
	ectx.Ctx = ctx
	ectx.Editor = d.editor
	ectx.Yanker = d.yanker
	ectx.Picker = d.picker
	ectx.Logger = d.logger
	return ectx
}

// RegisterHandler registers a handler for an exact action name.
func (d *Dispatcher) RegisterHandler(actionName string, h handler.Handler) {
	d.router.Register(actionName, h)
}

// RegisterHandlerFunc registers a handler function for an action name.
func (d *Dispatcher) RegisterHandlerFunc(actionName string, fn func(handler.Action, *execctx.ExecutionContext) handler.Result) {
	d.router.Register(actionName, &handler.Func{ActionName: actionName, Fn: fn})
}

// RegisterNamespace registers a namespace handler.
func (d *Dispatcher) RegisterNamespace(h handler.NamespaceHandler) {
	d.router.RegisterNamespace(h)
}

// UnregisterHandler removes a handler for an action name.
func (d *Dispatcher) UnregisterHandler(actionName string) {
	d.router.Unregister(actionName)
}

// RegisterPreHook registers a pre-dispatch hook.
func (d *Dispatcher) RegisterPreHook(hook PreDispatchHook) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.preHooks = append(d.preHooks, hook)
}

// RegisterPostHook registers a post-dispatch hook.
func (d *Dispatcher) RegisterPostHook(hook PostDispatchHook) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.postHooks = append(d.postHooks, hook)
}

// runPreHooks runs all pre-dispatch hooks.
// Returns false if any hook cancels the action.
func (d *Dispatcher) runPreHooks(action *handler.Action, ctx *execctx.ExecutionContext) bool {
	d.mu.RLock()
	hooks := make([]PreDispatchHook, len(d.preHooks))
	copy(hooks, d.preHooks)
	d.mu.RUnlock()

	for _, h := range hooks {
		if !h.PreDispatch(action, ctx) {
			return false
		}
	}
	return true
}

func (d *Dispatcher) runPostHooks(action *handler.Action, ctx *execctx.ExecutionContext, result *handler.Result) {
	d.mu.RLock()
	hooks := make([]PostDispatchHook, len(d.postHooks))
	copy(hooks, d.postHooks)
	d.mu.RUnlock()

	for _, h := range hooks {
		h.PostDispatch(action, ctx, result)
	}
}

// Router returns the action router.
func (d *Dispatcher) Router() *Router {
	return d.router
}

// Metrics returns the metrics collector (may be nil if disabled).
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Config returns the dispatcher configuration.
func (d *Dispatcher) Config() Config {
	return d.config
}
