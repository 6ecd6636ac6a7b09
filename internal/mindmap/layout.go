package mindmap

// Canvas geometry, in canvas units.
const (
	NodeWidth  = 120
	NodeHeight = 40

	HorizontalSpacing = 180
	VerticalSpacing   = 80

	RootX = 400
	RootY = 300
)

const (
	DefaultRootText = "Central Idea"
	DefaultNodeText = "New Node"
)

// ChildPosition returns where the child at index i of total children sits
// relative to its parent: one column to the right, the column centered on the
// parent's y.
func ChildPosition(parent Node, i, total int) (x, y float64) {
	span := float64(total-1) * VerticalSpacing
	x = parent.X + HorizontalSpacing
	y = parent.Y - span/2 + float64(i)*VerticalSpacing
	return x, y
}

// layoutChildren spaces every child of parent evenly. Only the children move;
// their own subtrees stay where they are.
func (m *Map) layoutChildren(parent *Node) {
	total := len(parent.Children)
	for i, id := range parent.Children {
		child, ok := m.nodes[id]
		if !ok {
			continue
		}
		child.X, child.Y = ChildPosition(*parent, i, total)
	}
}
