package component

// Coin is a collectible travelling toward the actor. Visible goes false in
// the same pass that removes the coin from the world.
type Coin struct {
	ID      uint64
	Visible bool
}

var CoinComponent = NewComponent[Coin]()
