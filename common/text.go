package common

import "fmt"

const WinMessage = "you win this level!!!"

// ScoreText is the score line every front-end shows.
func ScoreText(score int) string {
	return fmt.Sprintf("Score: %d", score)
}
