package layout_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/umlayout/pkg/command"
	"github.com/matzehuels/umlayout/pkg/diagram"
	"github.com/matzehuels/umlayout/pkg/layout"
)

func ExampleGridLayout() {
	d := diagram.New("shapes")
	for _, id := range []string{"Shape", "Circle", "Square", "Triangle"} {
		d.AddClass(diagram.Class{ID: id})
	}

	g := layout.NewGrid(layout.GridConfig{})
	g.SetDimensions(1000, 800)
	g.Layout(d)

	for _, c := range d.Classes() {
		fmt.Printf("%s (%.0f, %.0f)\n", c.ID, c.X, c.Y)
	}
	// Output:
	// Shape (50, 50)
	// Circle (300, 50)
	// Square (550, 50)
	// Triangle (50, 250)
}

func ExampleHierarchicalLayout_Levels() {
	d := diagram.New("animals")
	for _, id := range []string{"Animal", "Dog", "Puppy"} {
		d.AddClass(diagram.Class{ID: id})
	}
	d.AddRelation(diagram.Relation{Source: "Dog", Target: "Animal", Kind: diagram.RelInheritance})
	d.AddRelation(diagram.Relation{Source: "Puppy", Target: "Dog", Kind: diagram.RelInheritance})

	levels := layout.NewHierarchical(layout.HierarchicalConfig{}).Levels(d)
	fmt.Println(levels["Animal"], levels["Dog"], levels["Puppy"])
	// Output:
	// 0 1 2
}

func ExampleManager_ApplyLayoutWithCommands() {
	d := diagram.New("shapes")
	for _, id := range []string{"Shape", "Circle"} {
		d.AddClass(diagram.Class{ID: id})
	}

	stack := command.NewStack(0)
	m := layout.NewManager(layout.DefaultConfig(), nil)
	ctx := context.Background()

	moved, _ := m.ApplyLayoutWithCommands(ctx, d, layout.Grid, 1000, 800, stack)
	fmt.Println("moved:", moved, "history:", stack.History())

	moved, _ = m.ApplyLayoutWithCommands(ctx, d, layout.Grid, 1000, 800, stack)
	fmt.Println("moved:", moved, "history:", stack.History())

	stack.Undo()
	c, _ := d.Class("Circle")
	fmt.Printf("after undo: (%.0f, %.0f)\n", c.X, c.Y)
	// Output:
	// moved: 2 history: [Auto Layout (grid)]
	// moved: 0 history: [Auto Layout (grid)]
	// after undo: (0, 0)
}

func ExampleParseType() {
	t, _ := layout.ParseType("FORCE_DIRECTED")
	fmt.Println(t, "-", t.Description())
	// Output:
	// force - organic layout from a spring/repulsion simulation
}
