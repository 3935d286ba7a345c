package game

import (
	"go.uber.org/zap"

	"github.com/ddelfanti/fisica-milionaria-bot/internal/domain/entities"
)

// Lifelines operate on the presentation state of the current question only;
// the underlying session is never touched, except for the slot replaced by
// the switch lifeline. Each one is usable once per session, only while
// Playing with no submission in flight.

// UseFiftyFifty hides two incorrect answers of the current question, chosen
// uniformly without replacement. The correct answer and exactly one
// incorrect answer stay visible: a valid question has four distinct answers
// and therefore always three incorrect ones to draw from.
func (e *Engine) UseFiftyFifty() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.lifelineAllowedLocked(e.fiftyUsed); err != nil {
		return err
	}
	e.fiftyUsed = true

	incorrect := e.session[e.index].IncorrectAnswers()
	e.rng.Shuffle(len(incorrect), func(i, j int) {
		incorrect[i], incorrect[j] = incorrect[j], incorrect[i]
	})
	if len(incorrect) > 2 {
		incorrect = incorrect[:2]
	}

	e.hidden = make(map[string]struct{}, len(incorrect))
	for _, a := range incorrect {
		e.hidden[a] = struct{}{}
	}

	e.notifyLocked()
	return nil
}

// UsePhoneFriend produces an advisory suggestion: the correct answer with
// the configured probability, otherwise a uniformly random incorrect answer
// among those still visible. It never alters what is selectable.
func (e *Engine) UsePhoneFriend() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.lifelineAllowedLocked(e.phoneUsed); err != nil {
		return err
	}
	e.phoneUsed = true

	q := e.session[e.index]
	e.suggested = q.CorrectAnswer
	if e.rng.Float64() >= e.cfg.PhoneFriendAccuracy {
		var visible []string
		for _, a := range q.IncorrectAnswers() {
			if _, hidden := e.hidden[a]; !hidden {
				visible = append(visible, a)
			}
		}
		if len(visible) > 0 {
			e.suggested = visible[e.rng.Intn(len(visible))]
		}
	}

	e.notifyLocked()
	return nil
}

// UseSwitchQuestion replaces the current session slot with a random
// same-difficulty bank question whose text appears nowhere in the session,
// clearing hidden and suggested state that referenced the old answers and
// restarting the countdown. When no candidate exists the lifeline is still
// consumed and ErrNoReplacement is returned so the caller can tell the
// player.
func (e *Engine) UseSwitchQuestion() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.lifelineAllowedLocked(e.switchUsed); err != nil {
		return err
	}
	e.switchUsed = true

	candidates := SwitchCandidates(e.bank.Questions(), e.session, e.index)
	if len(candidates) == 0 {
		e.log.Info("switch lifeline consumed with no eligible replacement",
			zap.Int("question", e.index))
		e.notifyLocked()
		return ErrNoReplacement
	}

	e.session[e.index] = candidates[e.rng.Intn(len(candidates))]
	e.hidden = nil
	e.suggested = ""

	// New question, new countdown. No reveal/advance is pending while
	// Playing, so superseding only drops the old timer.
	e.supersedeLocked()
	e.secondsLeft = 0
	if e.timerEnabled {
		e.startTimerLocked()
	}

	e.notifyLocked()
	return nil
}

func (e *Engine) lifelineAllowedLocked(used bool) error {
	if e.status != entities.StatusPlaying || e.answered {
		return ErrNotPlaying
	}
	if used {
		return ErrLifelineUsed
	}
	return nil
}
