package component

import "github.com/milk9111/coinrunner/scene"

// Animator plays one clip of the entity's model.
type Animator struct {
	Clips   map[string]scene.Clip
	Current string
	Time    float64
	Frame   int
	Playing bool
}

var AnimatorComponent = NewComponent[Animator]()
