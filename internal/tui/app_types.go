package tui

import "todo-cli/internal/tree"

type view int

const (
	viewMenu view = iota
	viewList
	viewBrowse
	viewHelp
)

type modalKind int

const (
	modalNone modalKind = iota
	modalNewList
	modalLoadPath
	modalChangeDir
	modalSetting
	modalNewEntry
	modalRename
	modalConfirmDelete
	modalConfirmLeave
	modalPosition
)

func (k modalKind) isInput() bool {
	switch k {
	case modalNewList, modalLoadPath, modalChangeDir, modalSetting, modalNewEntry, modalRename:
		return true
	}
	return false
}

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

type pendingKind int

const (
	pendingNone pendingKind = iota
	pendingMove
	pendingCopy
)

func (k pendingKind) verb() string {
	if k == pendingCopy {
		return "copy"
	}
	return "move"
}

// pendingOp is a move or copy waiting for its target and position.
type pendingOp struct {
	kind    pendingKind
	source  tree.NodeID
	target  tree.NodeID
	blocked map[tree.NodeID]bool
}

func (p pendingOp) active() bool { return p.kind != pendingNone }
