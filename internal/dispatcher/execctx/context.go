// Package execctx provides the execution context for action handlers.
package execctx

import (
	"context"

	"github.com/dshills/killring/internal/engine/buffer"
	"github.com/dshills/killring/internal/engine/cursor"
	"github.com/dshills/killring/internal/killring"
	"github.com/dshills/killring/internal/logging"
)

// EditorInterface abstracts the document for handlers.
type EditorInterface interface {
	// Selections
	Selections() []cursor.Selection
	SetSelections(sels ...cursor.Selection) error

	// Read operations
	LineText(line uint32) string
	LineCount() uint32

	IsReadOnly() bool
}

// YankerInterface abstracts the kill/yank engine for handlers.
type YankerInterface interface {
	Kill(ranges []buffer.PointRange, rectMode bool, dir killring.Direction) error
	Copy(ranges []buffer.PointRange, rectMode, appending bool, dir killring.Direction) error
	Yank() error
	YankPop() error
	BrowseKillRing(ctx context.Context, p killring.Picker) (bool, error)
	CancelKillAppend()
	IsYankInterrupted() bool
	Ring() *killring.Ring
}

// ExecutionContext provides context for action execution.
// It contains references to all subsystems needed by handlers.
type ExecutionContext struct {
	// Ctx bounds blocking operations such as interactive browsing.
	Ctx context.Context

	// Editor provides access to the document and its selections.
	Editor EditorInterface

	// Yanker performs kill, copy and yank commands.
	Yanker YankerInterface

	// Picker presents ring entries when a browse action names no entry.
	Picker killring.Picker

	// Logger receives handler diagnostics.
	Logger *logging.Logger

	// Count is the repeat count (1 if not specified).
	Count int

	// Data holds handler-specific context data.
	Data map[string]any
}

// New creates a new execution context.
func New() *ExecutionContext {
	return &ExecutionContext{
		Ctx:    context.Background(),
		Logger: logging.Null(),
		Count:  1,
		Data:   make(map[string]any),
	}
}

// WithEditor sets the editor and returns the context.
func (ctx *ExecutionContext) WithEditor(editor EditorInterface) *ExecutionContext {
	ctx.Editor = editor
	return ctx
}

// WithYanker sets the yanker and returns the context.
func (ctx *ExecutionContext) WithYanker(y YankerInterface) *ExecutionContext {
	ctx.Yanker = y
	return ctx
}

// WithPicker sets the picker and returns the context.
func (ctx *ExecutionContext) WithPicker(p killring.Picker) *ExecutionContext {
	ctx.Picker = p
	return ctx
}

// WithCount sets the repeat count and returns the context.
func (ctx *ExecutionContext) WithCount(count int) *ExecutionContext {
	ctx.Count = count
	return ctx
}

// GetCount returns the repeat count, defaulting to 1.
func (ctx *ExecutionContext) GetCount() int {
	if ctx.Count <= 0 {
		return 1
	}
	return ctx.Count
}

// Context returns Ctx, or the background context when unset.
func (ctx *ExecutionContext) Context() context.Context {
	if ctx.Ctx == nil {
		return context.Background()
	}
	return ctx.Ctx
}

// IsReadOnly returns true if the document is read-only.
func (ctx *ExecutionContext) IsReadOnly() bool {
	return ctx.Editor != nil && ctx.Editor.IsReadOnly()
}

// SetData stores a value in the context.
func (ctx *ExecutionContext) SetData(key string, value any) {
	if ctx.Data == nil {
		ctx.Data = make(map[string]any)
	}
	ctx.Data[key] = value
}

// GetData retrieves a value from the context.
func (ctx *ExecutionContext) GetData(key string) (any, bool) {
	if ctx.Data == nil {
		return nil, false
	}
	v, ok := ctx.Data[key]
	return v, ok
}

// Validate checks that the editor and yanker are set.
func (ctx *ExecutionContext) Validate() error {
	if ctx.Editor == nil {
		return ErrMissingEditor
	}
	if ctx.Yanker == nil {
		return ErrMissingYanker
	}
	return nil
}

// ValidateForEdit checks that the context can perform edits.
func (ctx *ExecutionContext) ValidateForEdit() error {
	if err := ctx.Validate(); err != nil {
		return err
	}
	if ctx.IsReadOnly() {
		return ErrReadOnly
	}
	return nil
}
