package keymap

import (
	"github.com/dshills/killring/internal/dispatcher/handlers/killring"
)

// Default returns the Emacs bindings for the kill ring actions.
func Default() *Keymap {
	return &Keymap{
		Name:   "default",
		Source: "default",
		Bindings: []Binding{
			{Keys: "C-k", Action: killring.ActionKillLine, Description: "Kill to end of line"},
			{Keys: "M-d", Action: killring.ActionKillWord, Description: "Kill word forward"},
			{Keys: "M-DEL", Action: killring.ActionBackwardKillWord, Description: "Kill word backward"},
			{Keys: "C-w", Action: killring.ActionKillRegion, Description: "Kill region"},
			{Keys: "M-w", Action: killring.ActionCopyRegion, Description: "Copy region"},
			{Keys: "C-x r k", Action: killring.ActionKillRectangle, Description: "Kill rectangle"},
			{Keys: "C-x r M-w", Action: killring.ActionCopyRectangle, Description: "Copy rectangle"},
			{Keys: "C-y", Action: killring.ActionYank, Description: "Yank"},
			{Keys: "M-y", Action: killring.ActionYankPop, Description: "Replace yank with older entry"},
			{Keys: "C-c y", Action: killring.ActionBrowse, Description: "Browse kill ring"},
			{Keys: "C-g", Action: killring.ActionCancelAppend, Description: "Stop appending kills"},
		},
	}
}
