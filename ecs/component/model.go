package component

import "github.com/milk9111/coinrunner/scene"

// Model links an entity to the scene node that draws it. The entity owns the
// node and must remove it from the graph when it is destroyed.
type Model struct {
	Name string
	Node scene.NodeID
}

var ModelComponent = NewComponent[Model]()

// ModelRequest asks the session to load Asset asynchronously and attach the
// resulting model.
type ModelRequest struct {
	Asset string
}

var ModelRequestComponent = NewComponent[ModelRequest]()
