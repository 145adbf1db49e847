// Package command implements reversible edits and a grouped undo/redo stack.
//
// The layout manager only needs something that can open a named group,
// execute reversible commands into it and close it again ([Executor]). [Stack]
// is the in-process implementation used by the CLI and tests; an editor
// embedding the layout engine can supply its own.
//
//	stack := command.NewStack(50)
//	stack.BeginGroup("Auto Layout")
//	_ = stack.Execute(command.NewMove(c, from, to))
//	_ = stack.EndGroup()  // one undo step
//	_ = stack.Undo()
package command

import (
	"fmt"

	"github.com/matzehuels/umlayout/pkg/diagram"
	"github.com/matzehuels/umlayout/pkg/geom"
)

// Command is a reversible edit.
type Command interface {
	// Name describes the edit for history listings.
	Name() string
	// Execute applies the edit.
	Execute() error
	// Undo reverts the edit.
	Undo() error
}

// Executor is the subset of an undo system the layout manager depends on.
//
// Execute runs a command; while a group is open the executor buffers it into
// that group instead of recording it on its own. EndGroup commits the group
// as a single undoable unit, or discards it when nothing was executed.
type Executor interface {
	BeginGroup(name string)
	Execute(cmd Command) error
	EndGroup() error
}

// Move relocates one class between two positions.
type Move struct {
	Class    *diagram.Class
	From, To geom.Vec
}

// NewMove returns a command moving c from one position to another.
func NewMove(c *diagram.Class, from, to geom.Vec) *Move {
	return &Move{Class: c, From: from, To: to}
}

// Name implements Command.
func (m *Move) Name() string { return fmt.Sprintf("Move %s", m.Class.DisplayName()) }

// Execute moves the class to To.
func (m *Move) Execute() error {
	m.Class.SetPos(m.To)
	return nil
}

// Undo moves the class back to From.
func (m *Move) Undo() error {
	m.Class.SetPos(m.From)
	return nil
}

// Group is a named sequence of commands undone and redone as one.
type Group struct {
	name     string
	commands []Command
}

// Name implements Command.
func (g *Group) Name() string { return g.name }

// Len returns the number of commands in the group.
func (g *Group) Len() int { return len(g.commands) }

// Commands returns the buffered commands in execution order.
func (g *Group) Commands() []Command { return g.commands }

// Execute re-applies every command in order.
func (g *Group) Execute() error {
	for _, c := range g.commands {
		if err := c.Execute(); err != nil {
			return fmt.Errorf("%s: %w", g.name, err)
		}
	}
	return nil
}

// Undo reverts every command in reverse order.
func (g *Group) Undo() error {
	for i := len(g.commands) - 1; i >= 0; i-- {
		if err := g.commands[i].Undo(); err != nil {
			return fmt.Errorf("%s: %w", g.name, err)
		}
	}
	return nil
}
