package layout_test

import (
	"fmt"

	"github.com/matzehuels/panes/pkg/geom"
	"github.com/matzehuels/panes/pkg/layout"
)

func ExamplePartition() {
	p := layout.NewPartition(geom.Horizontal)
	leaves := []*layout.Leaf{
		layout.NewLeaf("nav", geom.Size{}),
		layout.NewLeaf("list", geom.Size{}),
		layout.NewLeaf("detail", geom.Size{}),
		layout.NewLeaf("inspector", geom.Size{}),
	}
	p.Attach(leaves[0], layout.Fixed(40))
	p.Attach(leaves[1], layout.Percent(25))
	p.Attach(leaves[2], layout.Equal())
	p.Attach(leaves[3], layout.Equal())
	p.SetFrame(geom.NewRect(0, 0, 400, 300))

	for _, l := range leaves {
		fmt.Println(l.Name(), l.Frame())
	}
	// Output:
	// nav (0,0 40x300)
	// list (40,0 90x300)
	// detail (130,0 135x300)
	// inspector (265,0 135x300)
}

func ExampleScroll() {
	s := layout.NewScroll(geom.Vertical)
	s.SetContentInsets(geom.Insets{Top: 5, Bottom: 5})
	for _, h := range []float64{10, 20, 30} {
		s.Attach(layout.NewLeaf("", geom.Size{}), layout.Fixed(h))
	}
	s.SetFrame(geom.NewRect(0, 0, 100, 40))
	fmt.Println(s.ContentSize().Height)
	// Output: 70
}
