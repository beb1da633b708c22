package component

// SessionTag marks the entity that carries per-session state such as the
// score.
type SessionTag struct{}

var SessionTagComponent = NewComponent[SessionTag]()
