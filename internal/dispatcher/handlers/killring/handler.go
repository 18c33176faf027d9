package killring

import (
	"errors"

	"github.com/dshills/killring/internal/browse"
	"github.com/dshills/killring/internal/dispatcher/execctx"
	"github.com/dshills/killring/internal/dispatcher/handler"
	"github.com/dshills/killring/internal/engine/buffer"
	"github.com/dshills/killring/internal/engine/cursor"
	kr "github.com/dshills/killring/internal/killring"
	"github.com/dshills/killring/internal/yank"
)

// Namespace is the action namespace served by Handler.
const Namespace = "killring"

// Action names for kill ring operations.
const (
	ActionKillLine         = "killring.killLine"         // C-k
	ActionKillWord         = "killring.killWord"         // M-d
	ActionBackwardKillWord = "killring.backwardKillWord" // M-DEL
	ActionKillRegion       = "killring.killRegion"       // C-w
	ActionCopyRegion       = "killring.copyRegion"       // M-w
	ActionKillRectangle    = "killring.killRectangle"    // C-x r k
	ActionCopyRectangle    = "killring.copyRectangle"    // C-x r M-w
	ActionYank             = "killring.yank"             // C-y
	ActionYankPop          = "killring.yankPop"          // M-y
	ActionBrowse           = "killring.browse"
	ActionCancelAppend     = "killring.cancelAppend"
)

// Argument keys understood by ActionBrowse.
const (
	// ArgIndex selects the ring entry at this index (0 is newest).
	ArgIndex = "index"
	// ArgQuery selects the best fuzzy match. Args.Text is used when unset.
	ArgQuery = "query"
)

// Handler handles the kill ring namespace.
type Handler struct{}

// NewHandler creates a new kill ring handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Namespace returns the killring namespace.
func (h *Handler) Namespace() string {
	return Namespace
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionKillLine, ActionKillWord, ActionBackwardKillWord,
		ActionKillRegion, ActionCopyRegion, ActionKillRectangle,
		ActionCopyRectangle, ActionYank, ActionYankPop, ActionBrowse,
		ActionCancelAppend:
		return true
	}
	return false
}

// HandleAction processes a kill ring action.
func (h *Handler) HandleAction(action handler.Action, ctx *execctx.ExecutionContext) handler.Result {
	switch action.Name {
	case ActionCancelAppend:
		if ctx.Yanker == nil {
			return handler.Error(execctx.ErrMissingYanker)
		}
		ctx.Yanker.CancelKillAppend()
		return handler.Success()
	case ActionCopyRegion:
		if err := ctx.Validate(); err != nil {
			return handler.Error(err)
		}
		return h.copyRegion(ctx, false)
	case ActionCopyRectangle:
		if err := ctx.Validate(); err != nil {
			return handler.Error(err)
		}
		return h.copyRegion(ctx, true)
	}

	if err := ctx.ValidateForEdit(); err != nil {
		return handler.Error(err)
	}

	count := ctx.GetCount()

	switch action.Name {
	case ActionKillLine:
		return h.killLine(ctx, count)
	case ActionKillWord:
		return h.killWord(ctx, count)
	case ActionBackwardKillWord:
		return h.backwardKillWord(ctx, count)
	case ActionKillRegion:
		return h.killRegion(ctx, false)
	case ActionKillRectangle:
		return h.killRegion(ctx, true)
	case ActionYank:
		return h.yank(ctx)
	case ActionYankPop:
		return h.yankPop(ctx, count)
	case ActionBrowse:
		return h.browse(action, ctx)
	}

	return handler.Errorf("unknown killring action: %s", action.Name)
}

// killLine kills from each cursor to the end of its line.
func (h *Handler) killLine(ctx *execctx.ExecutionContext, count int) handler.Result {
	sels := ctx.Editor.Selections()
	ranges := make([]buffer.PointRange, len(sels))
	for i, sel := range sels {
		ranges[i] = buffer.NewPointRange(sel.Active, lineKillEnd(ctx.Editor, sel.Active, count))
	}
	return h.kill(ctx, mergeRanges(ranges), false, kr.Forward, "End of buffer")
}

// killWord kills from each cursor to the end of the count-th next word.
func (h *Handler) killWord(ctx *execctx.ExecutionContext, count int) handler.Result {
	sels := ctx.Editor.Selections()
	ranges := make([]buffer.PointRange, len(sels))
	for i, sel := range sels {
		end := sel.Active
		for n := 0; n < count; n++ {
			end = wordEndForward(ctx.Editor, end)
		}
		ranges[i] = buffer.NewPointRange(sel.Active, end)
	}
	return h.kill(ctx, mergeRanges(ranges), false, kr.Forward, "End of buffer")
}

// backwardKillWord kills from the start of the count-th previous word to
// each cursor. The text is prepended when appending to the current entry.
func (h *Handler) backwardKillWord(ctx *execctx.ExecutionContext, count int) handler.Result {
	sels := ctx.Editor.Selections()
	ranges := make([]buffer.PointRange, len(sels))
	for i, sel := range sels {
		start := sel.Active
		for n := 0; n < count; n++ {
			start = wordStartBackward(ctx.Editor, start)
		}
		ranges[i] = buffer.NewPointRange(start, sel.Active)
	}
	return h.kill(ctx, mergeRanges(ranges), false, kr.Backward, "Beginning of buffer")
}

// killRegion kills every selection, as a block when rect is true.
func (h *Handler) killRegion(ctx *execctx.ExecutionContext, rect bool) handler.Result {
	ranges := cursor.Ranges(ctx.Editor.Selections())
	return h.kill(ctx, ranges, rect, kr.Forward, "The region is empty")
}

func (h *Handler) kill(ctx *execctx.ExecutionContext, ranges []buffer.PointRange, rect bool, dir kr.Direction, emptyMsg string) handler.Result {
	if allEmpty(ranges) {
		return handler.NoOpWithMessage(emptyMsg)
	}
	if err := ctx.Yanker.Kill(ranges, rect, dir); err != nil {
		return handler.Error(err)
	}
	return handler.Success()
}

// copyRegion saves every selection without deleting it and then collapses
// the selections to their cursors.
func (h *Handler) copyRegion(ctx *execctx.ExecutionContext, rect bool) handler.Result {
	sels := ctx.Editor.Selections()
	ranges := cursor.Ranges(sels)
	if allEmpty(ranges) {
		return handler.NoOpWithMessage("The region is empty")
	}
	if err := ctx.Yanker.Copy(ranges, rect, false, kr.Forward); err != nil {
		return handler.Error(err)
	}

	collapsed := make([]cursor.Selection, len(sels))
	for i, sel := range sels {
		collapsed[i] = sel.Collapse()
	}
	if err := ctx.Editor.SetSelections(collapsed...); err != nil {
		return handler.Error(err)
	}
	return handler.SuccessWithMessage("Saved text from region")
}

func (h *Handler) yank(ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.Yanker.Yank(); err != nil {
		return handler.Error(err)
	}
	return handler.Success()
}

// yankPop replaces the text of the previous yank with the next older entry,
// count times.
func (h *Handler) yankPop(ctx *execctx.ExecutionContext, count int) handler.Result {
	if ctx.Yanker.Ring() == nil {
		return handler.NoOpWithMessage(yank.ErrNoRing.Error())
	}
	for n := 0; n < count; n++ {
		if err := ctx.Yanker.YankPop(); err != nil {
			if errors.Is(err, yank.ErrNotYank) {
				return handler.Error(err).WithMessage(err.Error())
			}
			return handler.Error(err)
		}
	}
	return handler.Success()
}

// browse lets the user choose a ring entry and pastes it. An index or query
// argument selects the entry without interaction.
func (h *Handler) browse(action handler.Action, ctx *execctx.ExecutionContext) handler.Result {
	var picker kr.Picker
	if idx, ok := action.Args.GetInt(ArgIndex); ok {
		picker = browse.IndexPicker{Index: idx}
	} else if q, ok := action.Args.GetString(ArgQuery); ok {
		picker = browse.QueryPicker{Query: q}
	} else if action.Args.Text != "" {
		picker = browse.QueryPicker{Query: action.Args.Text}
	} else if ctx.Picker != nil {
		picker = ctx.Picker
	} else {
		return handler.Error(execctx.ErrMissingPicker)
	}

	if ring := ctx.Yanker.Ring(); ring != nil && ring.Len() == 0 {
		return handler.NoOpWithMessage("Kill ring is empty")
	}

	chosen, err := ctx.Yanker.BrowseKillRing(ctx.Context(), picker)
	switch {
	case errors.Is(err, yank.ErrNoRing):
		return handler.NoOpWithMessage(err.Error())
	case err != nil:
		return handler.Error(err)
	case !chosen:
		return handler.CancelledWithMessage("Quit")
	}
	return handler.Success()
}
