package component

// Score counts collected coins for one session. Won latches once Value
// reaches Threshold.
type Score struct {
	Value     int
	Threshold int
	Won       bool
}

var ScoreComponent = NewComponent[Score]()
