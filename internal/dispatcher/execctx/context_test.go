package execctx

import (
	"errors"
	"testing"

	"github.com/dshills/killring/internal/engine/cursor"
)

type stubEditor struct {
	readOnly bool
}

func (s *stubEditor) Selections() []cursor.Selection { return nil }
func (s *stubEditor) SetSelections(...cursor.Selection) error { return nil }
func (s *stubEditor) LineText(uint32) string { return "" }
func (s *stubEditor) LineCount() uint32 { return 1 }
func (s *stubEditor) IsReadOnly() bool { return s.readOnly }

func TestNewDefaults(t *testing.T) {
	ctx := New()
	if ctx.GetCount() != 1 {
		t.Errorf("GetCount() = %d, want 1", ctx.GetCount())
	}
	if ctx.Context() == nil {
		t.Error("Context() should not be nil")
	}
	if ctx.Logger == nil {
		t.Error("Logger should default to the null logger")
	}
}

func TestGetCount(t *testing.T) {
	tests := []struct {
		count int
		want  int
	}{
		{0, 1},
		{-3, 1},
		{1, 1},
		{4, 4},
	}
	for _, tt := range tests {
		if got := New().WithCount(tt.count).GetCount(); got != tt.want {
			t.Errorf("GetCount() with %d = %d, want %d", tt.count, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	ctx := New()
	if err := ctx.Validate(); !errors.Is(err, ErrMissingEditor) {
		t.Errorf("Validate() = %v, want ErrMissingEditor", err)
	}

	ctx.WithEditor(&stubEditor{})
	if err := ctx.Validate(); !errors.Is(err, ErrMissingYanker) {
		t.Errorf("Validate() = %v, want ErrMissingYanker", err)
	}
}

func TestValidateForEditReadOnly(t *testing.T) {
	ctx := &ExecutionContext{Editor: &stubEditor{readOnly: true}}
	if !ctx.IsReadOnly() {
		t.Fatal("IsReadOnly() = false")
	}
	if err := ctx.ValidateForEdit(); !errors.Is(err, ErrMissingYanker) {
		t.Errorf("ValidateForEdit() = %v, want ErrMissingYanker first", err)
	}
}

func TestData(t *testing.T) {
	ctx := &ExecutionContext{}
	if _, ok := ctx.GetData("k"); ok {
		t.Error("GetData on empty context should miss")
	}
	ctx.SetData("k", 7)
	if v, ok := ctx.GetData("k"); !ok || v != 7 {
		t.Errorf("GetData(k) = %v, %v", v, ok)
	}
}
