package scene

import (
	"sort"

	"github.com/golang/geo/r3"
	"github.com/google/uuid"
)

// Node is an element of the scene graph. A node without a shape only groups
// its children.
type Node struct {
	ID       string
	Name     string
	Visible  bool
	Shape    Shape
	Children []*Node
}

// NewNode returns a visible node with a fresh id.
func NewNode(name string, shape Shape) *Node {
	return &Node{
		ID:      uuid.NewString(),
		Name:    name,
		Visible: true,
		Shape:   shape,
	}
}

// Add appends children and returns n.
func (n *Node) Add(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Descendants returns every node below n, depth first.
func (n *Node) Descendants() []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(p *Node) {
		for _, c := range p.Children {
			out = append(out, c)
			walk(c)
		}
	}
	walk(n)
	return out
}

// Intersection is a ray hit on a node.
type Intersection struct {
	Distance float64
	Point    r3.Vector
	Object   *Node
}

// Visible reports whether the struck node is visible.
func (i Intersection) Visible() bool {
	return i.Object != nil && i.Object.Visible
}

// Intersect tests r against every descendant of n, not n itself, and returns
// the hits ordered by distance. Visibility is not filtered here.
func (n *Node) Intersect(r Ray) []Intersection {
	var hits []Intersection
	test := func(p *Node) {
		if p.Shape == nil {
			return
		}
		if d, ok := p.Shape.Intersect(r); ok {
			hits = append(hits, Intersection{Distance: d, Point: r.At(d), Object: p})
		}
	}
	for _, d := range n.Descendants() {
		test(d)
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}

// ClosestVisible returns the first visible hit of a distance-ordered list, or
// nil when every hit is invisible.
func ClosestVisible(hits []Intersection) *Intersection {
	for i := range hits {
		if hits[i].Visible() {
			h := hits[i]
			return &h
		}
	}
	return nil
}
