package command

// Stack keeps the undo and redo histories. Its only state is the pair of
// histories; executing a new command always empties the redo side.
type Stack struct {
	undo []Command
	redo []Command
}

// NewStack returns an empty history.
func NewStack() *Stack {
	return &Stack{}
}

// Execute runs cmd and pushes it onto the undo history.
func (s *Stack) Execute(cmd Command) {
	cmd.Execute()
	s.undo = append(s.undo, cmd)
	s.redo = nil
}

// Undo reverts the most recent command. It is a no-op on an empty history
// and reports whether anything was undone.
func (s *Stack) Undo() bool {
	cmd, ok := pop(&s.undo)
	if !ok {
		return false
	}
	cmd.Undo()
	s.redo = append(s.redo, cmd)
	return true
}

// Redo re-executes the most recently undone command. It is a no-op when
// there is nothing to redo and reports whether anything was redone.
func (s *Stack) Redo() bool {
	cmd, ok := pop(&s.redo)
	if !ok {
		return false
	}
	cmd.Execute()
	s.undo = append(s.undo, cmd)
	return true
}

// Clear empties both histories.
func (s *Stack) Clear() {
	s.undo = nil
	s.redo = nil
}

func (s *Stack) CanUndo() bool { return len(s.undo) > 0 }

func (s *Stack) CanRedo() bool { return len(s.redo) > 0 }

// PeekUndoDescription describes the command Undo would revert, or "".
func (s *Stack) PeekUndoDescription() string { return peek(s.undo) }

// PeekRedoDescription describes the command Redo would replay, or "".
func (s *Stack) PeekRedoDescription() string { return peek(s.redo) }

func (s *Stack) UndoLen() int { return len(s.undo) }

func (s *Stack) RedoLen() int { return len(s.redo) }

func pop(history *[]Command) (Command, bool) {
	h := *history
	if len(h) == 0 {
		return nil, false
	}
	cmd := h[len(h)-1]
	h[len(h)-1] = nil
	*history = h[:len(h)-1]
	return cmd, true
}

func peek(history []Command) string {
	if len(history) == 0 {
		return ""
	}
	return history[len(history)-1].Description()
}
