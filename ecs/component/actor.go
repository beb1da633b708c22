package component

// Actor marks the player-controlled runner. Smoothing is the fraction of the
// remaining lane distance covered per frame.
type Actor struct {
	Smoothing float64
}

var ActorComponent = NewComponent[Actor]()
