package command

import "errors"

var (
	// ErrNothingToUndo is returned by [Stack.Undo] on an empty history.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrNothingToRedo is returned by [Stack.Redo] when no undone entry remains.
	ErrNothingToRedo = errors.New("nothing to redo")

	// ErrNoOpenGroup is returned by [Stack.EndGroup] without a matching BeginGroup.
	ErrNoOpenGroup = errors.New("no open command group")
)

// DefaultCapacity is the history length used when NewStack gets a
// non-positive capacity.
const DefaultCapacity = 100

// Stack is a linear undo/redo history of commands and command groups.
//
// Entries before the cursor are applied and can be undone; entries after it
// were undone and can be redone. Recording a new entry drops the redo tail.
// Groups may be nested; only the outermost EndGroup commits.
//
// Stack is not safe for concurrent use.
type Stack struct {
	entries  []Command
	cursor   int
	capacity int

	open  *Group
	depth int
}

// NewStack creates a stack keeping at most capacity entries.
func NewStack(capacity int) *Stack {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Stack{capacity: capacity}
}

// BeginGroup opens a named group. Nested calls join the outer group.
func (s *Stack) BeginGroup(name string) {
	if s.open == nil {
		s.open = &Group{name: name}
	}
	s.depth++
}

// Execute runs cmd and records it, either in the open group or as its own
// history entry. A failing command is not recorded.
func (s *Stack) Execute(cmd Command) error {
	if err := cmd.Execute(); err != nil {
		return err
	}
	if s.open != nil {
		s.open.commands = append(s.open.commands, cmd)
		return nil
	}
	s.push(cmd)
	return nil
}

// EndGroup closes the innermost open group. Closing the outermost group
// commits it as one entry, or discards it if it is empty.
func (s *Stack) EndGroup() error {
	if s.open == nil {
		return ErrNoOpenGroup
	}
	s.depth--
	if s.depth > 0 {
		return nil
	}
	g := s.open
	s.open = nil
	if g.Len() > 0 {
		s.push(g)
	}
	return nil
}

// InGroup reports whether a group is open.
func (s *Stack) InGroup() bool { return s.open != nil }

// Undo reverts the most recent applied entry.
func (s *Stack) Undo() error {
	if !s.CanUndo() {
		return ErrNothingToUndo
	}
	if err := s.entries[s.cursor-1].Undo(); err != nil {
		return err
	}
	s.cursor--
	return nil
}

// Redo re-applies the most recently undone entry.
func (s *Stack) Redo() error {
	if !s.CanRedo() {
		return ErrNothingToRedo
	}
	if err := s.entries[s.cursor].Execute(); err != nil {
		return err
	}
	s.cursor++
	return nil
}

// CanUndo reports whether an applied entry exists.
func (s *Stack) CanUndo() bool { return s.cursor > 0 }

// CanRedo reports whether an undone entry exists.
func (s *Stack) CanRedo() bool { return s.cursor < len(s.entries) }

// Len returns the number of recorded entries, applied or undone.
func (s *Stack) Len() int { return len(s.entries) }

// Peek returns the most recent applied entry.
func (s *Stack) Peek() (Command, bool) {
	if !s.CanUndo() {
		return nil, false
	}
	return s.entries[s.cursor-1], true
}

// History returns the names of the applied entries, oldest first.
func (s *Stack) History() []string {
	names := make([]string, 0, s.cursor)
	for _, e := range s.entries[:s.cursor] {
		names = append(names, e.Name())
	}
	return names
}

func (s *Stack) push(cmd Command) {
	s.entries = append(s.entries[:s.cursor], cmd)
	if over := len(s.entries) - s.capacity; over > 0 {
		s.entries = s.entries[over:]
	}
	s.cursor = len(s.entries)
}

var _ Executor = (*Stack)(nil)
