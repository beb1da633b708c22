package scene

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/coinrunner/geom"
)

type NodeID uint64

// Node is one object placed in the scene.
type Node struct {
	ID       NodeID
	Model    *Model
	Position mgl64.Vec3
	// Pose is an extra offset driven by the model's animation.
	Pose    mgl64.Vec3
	Scale   float64
	Visible bool
}

// Bounds is the node's world-space axis-aligned box.
func (n *Node) Bounds() geom.Box3 {
	scale := n.Scale
	if scale == 0 {
		scale = 1
	}
	size := n.Model.Size.Mul(scale)
	origin := n.Position.Add(n.Pose)
	return geom.NewBox3(origin.Add(n.Model.Pivot.Min(size)), size)
}

// Graph is the set of objects the renderer draws. It is owned by one
// session and only touched from the frame loop.
type Graph struct {
	nodes map[NodeID]*Node
	next  NodeID
}

func NewGraph() *Graph {
	return &Graph{nodes: map[NodeID]*Node{}}
}

// Add places model at pos and returns its handle.
func (g *Graph) Add(m *Model, pos mgl64.Vec3, scale float64) NodeID {
	if g == nil || m == nil {
		return 0
	}
	g.next++
	g.nodes[g.next] = &Node{ID: g.next, Model: m, Position: pos, Scale: scale, Visible: true}
	return g.next
}

// Remove drops the node. It reports false when id is unknown.
func (g *Graph) Remove(id NodeID) bool {
	if g == nil {
		return false
	}
	if _, ok := g.nodes[id]; !ok {
		return false
	}
	delete(g.nodes, id)
	return true
}

func (g *Graph) SetVisible(id NodeID, visible bool) {
	if n := g.node(id); n != nil {
		n.Visible = visible
	}
}

func (g *Graph) SetPosition(id NodeID, pos mgl64.Vec3) {
	if n := g.node(id); n != nil {
		n.Position = pos
	}
}

func (g *Graph) SetPose(id NodeID, pose mgl64.Vec3) {
	if n := g.node(id); n != nil {
		n.Pose = pose
	}
}

// Bounds returns the world-space box of a node.
func (g *Graph) Bounds(id NodeID) (geom.Box3, bool) {
	n := g.node(id)
	if n == nil {
		return geom.Box3{}, false
	}
	return n.Bounds(), true
}

// Node returns a copy of the node.
func (g *Graph) Node(id NodeID) (Node, bool) {
	n := g.node(id)
	if n == nil {
		return Node{}, false
	}
	return *n, true
}

// Nodes returns copies of every node ordered by id.
func (g *Graph) Nodes() []Node {
	if g == nil {
		return nil
	}
	out := make([]Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, *n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (g *Graph) Len() int {
	if g == nil {
		return 0
	}
	return len(g.nodes)
}

func (g *Graph) node(id NodeID) *Node {
	if g == nil {
		return nil
	}
	return g.nodes[id]
}
