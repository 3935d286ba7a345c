// Package game implements the session engine: the prize ladder, the
// stratified session sampler, the lifelines and the state machine that
// drives a single play-through.
package game

// PrizeAmounts is the prize ladder from the top down: index 0 is the
// €1.000.000 question, index 14 the €100 one. A question at session index i
// sits on rung len(PrizeAmounts)-1-i.
var PrizeAmounts = []string{
	"€1.000.000",
	"€500.000",
	"€250.000",
	"€125.000",
	"€64.000",
	"€32.000",
	"€16.000",
	"€8.000",
	"€4.000",
	"€2.000",
	"€1.000",
	"€500",
	"€300",
	"€200",
	"€100",
}

// SafeRungs are the guaranteed checkpoints, as rung indices counted from the
// top of the ladder: €32.000 and €1.000.
var SafeRungs = []int{5, 10}

// ZeroPrize is what a player leaves with when no checkpoint was reached.
const ZeroPrize = "€0"

// SessionLength is the number of rungs, and therefore the number of
// questions in a full session.
const SessionLength = 15

// RungFor maps a session question index (0 = first, lowest value) to its
// prize-ladder rung (0 = top).
func RungFor(questionIndex int) int {
	return len(PrizeAmounts) - 1 - questionIndex
}

// PrizeFor returns the prize label for a ladder rung.
func PrizeFor(rung int) string {
	if rung < 0 || rung >= len(PrizeAmounts) {
		return ZeroPrize
	}
	return PrizeAmounts[rung]
}

// TopPrize returns the value of the highest rung.
func TopPrize() string {
	return PrizeAmounts[0]
}

// IsSafe reports whether a rung is a guaranteed checkpoint.
func IsSafe(rung int) bool {
	for _, s := range SafeRungs {
		if s == rung {
			return true
		}
	}
	return false
}

// FinalPrize computes the money a player leaves with.
//
// questionIndex is the session index of the last question the player
// answered, answeredCorrectly whether that answer was right, and wasFinal
// whether it was the last question of the session.
func FinalPrize(questionIndex int, answeredCorrectly, wasFinal bool) string {
	if answeredCorrectly && wasFinal {
		return TopPrize()
	}
	if answeredCorrectly {
		return PrizeFor(RungFor(questionIndex))
	}

	if questionIndex <= 0 {
		return ZeroPrize
	}

	// A checkpoint is secured once the ladder has been climbed to its rung:
	// failing the checkpoint question itself still pays that checkpoint. The
	// floor is the highest-value (lowest-index) secured checkpoint.
	rung := RungFor(questionIndex)
	best := -1
	for _, s := range SafeRungs {
		if s >= rung && (best < 0 || s < best) {
			best = s
		}
	}
	if best < 0 {
		return ZeroPrize
	}
	return PrizeFor(best)
}
