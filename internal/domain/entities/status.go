package entities

// GameStatus identifies which screen of the game is active. Exactly one
// status is active at any time and it decides which inputs are accepted.
type GameStatus int

const (
	StatusWelcome GameStatus = iota
	StatusLoading
	StatusPlaying
	StatusAnswerSelected
	StatusGameOver
)

// String returns the status name for logs.
func (s GameStatus) String() string {
	switch s {
	case StatusWelcome:
		return "welcome"
	case StatusLoading:
		return "loading"
	case StatusPlaying:
		return "playing"
	case StatusAnswerSelected:
		return "answer_selected"
	case StatusGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}
