package command

import (
	"errors"
	"testing"

	"github.com/matzehuels/umlayout/pkg/diagram"
	"github.com/matzehuels/umlayout/pkg/geom"
)

type failing struct{}

func (failing) Name() string   { return "fail" }
func (failing) Execute() error { return errors.New("boom") }
func (failing) Undo() error    { return nil }

func newClass(id string) *diagram.Class {
	return &diagram.Class{ID: id}
}

func TestMove(t *testing.T) {
	c := newClass("A")
	m := NewMove(c, geom.Vec{X: 1, Y: 2}, geom.Vec{X: 10, Y: 20})

	if err := m.Execute(); err != nil {
		t.Fatal(err)
	}
	if c.X != 10 || c.Y != 20 {
		t.Errorf("after Execute = (%v,%v), want (10,20)", c.X, c.Y)
	}
	if err := m.Undo(); err != nil {
		t.Fatal(err)
	}
	if c.X != 1 || c.Y != 2 {
		t.Errorf("after Undo = (%v,%v), want (1,2)", c.X, c.Y)
	}
	if m.Name() != "Move A" {
		t.Errorf("Name() = %q", m.Name())
	}
}

func TestStackSingleCommands(t *testing.T) {
	s := NewStack(0)
	c := newClass("A")

	_ = s.Execute(NewMove(c, geom.Vec{}, geom.Vec{X: 5}))
	_ = s.Execute(NewMove(c, geom.Vec{X: 5}, geom.Vec{X: 7}))
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}

	if err := s.Undo(); err != nil {
		t.Fatal(err)
	}
	if c.X != 5 {
		t.Errorf("X after undo = %v, want 5", c.X)
	}
	if err := s.Redo(); err != nil {
		t.Fatal(err)
	}
	if c.X != 7 {
		t.Errorf("X after redo = %v, want 7", c.X)
	}
	if err := s.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("Redo() = %v, want ErrNothingToRedo", err)
	}
}

func TestStackGroupIsOneUndoStep(t *testing.T) {
	s := NewStack(10)
	a, b := newClass("A"), newClass("B")

	s.BeginGroup("Auto Layout")
	_ = s.Execute(NewMove(a, geom.Vec{}, geom.Vec{X: 100, Y: 50}))
	_ = s.Execute(NewMove(b, geom.Vec{}, geom.Vec{X: 300, Y: 50}))
	if s.Len() != 0 {
		t.Errorf("open group should buffer, Len() = %d", s.Len())
	}
	if err := s.EndGroup(); err != nil {
		t.Fatal(err)
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	if h := s.History(); len(h) != 1 || h[0] != "Auto Layout" {
		t.Errorf("History() = %v", h)
	}

	if err := s.Undo(); err != nil {
		t.Fatal(err)
	}
	if a.Placed() || b.Placed() {
		t.Errorf("undo should restore both classes, got A=%v B=%v", a.Pos(), b.Pos())
	}
	if err := s.Redo(); err != nil {
		t.Fatal(err)
	}
	if a.X != 100 || b.X != 300 {
		t.Errorf("redo should re-apply both moves, got A=%v B=%v", a.Pos(), b.Pos())
	}
}

func TestStackEmptyGroupDiscarded(t *testing.T) {
	s := NewStack(10)
	s.BeginGroup("nothing")
	if err := s.EndGroup(); err != nil {
		t.Fatal(err)
	}
	if s.Len() != 0 || s.CanUndo() {
		t.Errorf("empty group should be discarded, Len() = %d", s.Len())
	}
	if err := s.EndGroup(); !errors.Is(err, ErrNoOpenGroup) {
		t.Errorf("EndGroup() = %v, want ErrNoOpenGroup", err)
	}
}

func TestStackNestedGroups(t *testing.T) {
	s := NewStack(10)
	c := newClass("A")
	s.BeginGroup("outer")
	s.BeginGroup("inner")
	_ = s.Execute(NewMove(c, geom.Vec{}, geom.Vec{X: 1}))
	_ = s.EndGroup()
	if !s.InGroup() || s.Len() != 0 {
		t.Fatal("inner EndGroup should not commit")
	}
	_ = s.EndGroup()
	if top, ok := s.Peek(); !ok || top.Name() != "outer" {
		t.Errorf("Peek() = %v, %v want outer", top, ok)
	}
}

func TestStackNewEntryDropsRedoTail(t *testing.T) {
	s := NewStack(10)
	c := newClass("A")
	_ = s.Execute(NewMove(c, geom.Vec{}, geom.Vec{X: 1}))
	_ = s.Execute(NewMove(c, geom.Vec{X: 1}, geom.Vec{X: 2}))
	_ = s.Undo()
	_ = s.Execute(NewMove(c, geom.Vec{X: 1}, geom.Vec{X: 3}))
	if s.CanRedo() {
		t.Error("redo tail should be dropped")
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestStackCapacity(t *testing.T) {
	s := NewStack(2)
	c := newClass("A")
	for i := 1; i <= 3; i++ {
		_ = s.Execute(NewMove(c, geom.Vec{X: float64(i - 1)}, geom.Vec{X: float64(i)}))
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	_ = s.Undo()
	_ = s.Undo()
	if err := s.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("third Undo() = %v, want ErrNothingToUndo", err)
	}
	if c.X != 1 {
		t.Errorf("X = %v, want 1 (oldest entry trimmed)", c.X)
	}
}

func TestStackFailingCommandNotRecorded(t *testing.T) {
	s := NewStack(10)
	if err := s.Execute(failing{}); err == nil {
		t.Fatal("Execute should return the command error")
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}
