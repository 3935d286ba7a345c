package game

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ddelfanti/fisica-milionaria-bot/internal/domain/entities"
)

// NoAnswer is the sentinel submitted when the countdown reaches zero before
// the player picked anything. It never matches a real answer.
const NoAnswer = ""

var (
	ErrGameInProgress   = errors.New("a game is already in progress")
	ErrNoQuestions      = errors.New("no questions available for a session")
	ErrNotPlaying       = errors.New("action is only available while playing")
	ErrLifelineUsed     = errors.New("lifeline already used")
	ErrNoReplacement    = errors.New("no eligible replacement question")
	ErrDeveloperModeOff = errors.New("developer mode is disabled")
	ErrResetNotArmed    = errors.New("reset was not armed")
)

// Bank is the question pool collaborator.
type Bank interface {
	// Questions returns the current bank contents, oldest first.
	Questions() []entities.Question
	// Add merges new questions into the bank, deduplicating by text.
	Add(ctx context.Context, qs []entities.Question)
}

// QuestionSource fetches a fresh batch of questions from a remote provider.
type QuestionSource interface {
	Fetch(ctx context.Context) ([]entities.Question, error)
}

// WinsStore persists the cumulative win counter.
type WinsStore interface {
	Load(ctx context.Context) (int, error)
	Save(ctx context.Context, wins int) error
}

// Config holds the engine's timing and lifeline policy constants.
type Config struct {
	SuspenseDelay       time.Duration // answer chosen -> correctness revealed
	AdvanceDelay        time.Duration // correct reveal -> next question
	LossDelay           time.Duration // wrong reveal -> game over screen
	WinDelay            time.Duration // final correct reveal -> game over screen, leaves room for the win cue
	TickInterval        time.Duration // countdown granularity
	ResetWinsWindow     time.Duration // confirmation window for resetting the win counter
	PhoneFriendAccuracy float64       // probability the phone-a-friend suggestion is correct
	TimerEnabled        bool          // initial countdown toggle
}

// DefaultConfig returns the production timing constants.
func DefaultConfig() Config {
	return Config{
		SuspenseDelay:       3 * time.Second,
		AdvanceDelay:        2 * time.Second,
		LossDelay:           3 * time.Second,
		WinDelay:            5 * time.Second,
		TickInterval:        time.Second,
		ResetWinsWindow:     10 * time.Second,
		PhoneFriendAccuracy: 0.85,
		TimerEnabled:        true,
	}
}

// timerSeconds is the per-difficulty countdown budget.
var timerSeconds = map[entities.Difficulty]int{
	entities.DifficultyEasy:       30,
	entities.DifficultyMediumHard: 45,
	entities.DifficultyVeryHard:   60,
	entities.DifficultyExpert:     90,
}

// Snapshot is an immutable view of the engine state for rendering.
type Snapshot struct {
	Status          entities.GameStatus
	Question        entities.Question // zero value outside Playing/AnswerSelected
	Index           int               // current question index, 0-based
	Total           int               // session length
	Rung            int               // prize-ladder rung of the current question
	SelectedAnswer  string
	InSuspense      bool
	Revealed        bool
	Correct         bool // meaningful only once Revealed
	HiddenAnswers   []string
	SuggestedAnswer string
	FiftyFiftyUsed  bool
	PhoneFriendUsed bool
	SwitchUsed      bool
	TimerEnabled    bool
	SecondsLeft     int
	DeveloperMode   bool
	Wins            int
	ResetArmed      bool
	FinalPrize      string // meaningful once Revealed or GameOver
}

// Engine is the game state machine. All state transitions, whether triggered
// by player input or by timers, are serialized through a single mutex, and a
// monotonically increasing epoch invalidates every scheduled callback armed
// before the current transition. The OnChange callback is invoked with the
// lock held; renderers must not call back into the engine from it.
type Engine struct {
	mu      sync.Mutex
	log     *zap.Logger
	sched   Scheduler
	rng     *rand.Rand
	sampler *Sampler
	bank    Bank
	source  QuestionSource
	wins    WinsStore
	cfg     Config

	status       entities.GameStatus
	session      []entities.Question
	index        int
	selected     string
	answered     bool // reentrancy guard: one accepted submission per question
	inSuspense   bool
	revealed     bool
	lastCorrect  bool
	hidden       map[string]struct{}
	suggested    string
	fiftyUsed    bool
	phoneUsed    bool
	switchUsed   bool
	timerEnabled bool
	devMode      bool
	secondsLeft  int
	winCount     int
	resetArmed   bool

	epoch         uint64
	cancelTimer   CancelFunc
	cancelPending CancelFunc
	cancelDisarm  CancelFunc

	onChange func(Snapshot)
}

// NewEngine creates an Engine in the Welcome state.
func NewEngine(
	log *zap.Logger,
	sched Scheduler,
	rng *rand.Rand,
	bank Bank,
	source QuestionSource,
	wins WinsStore,
	cfg Config,
) *Engine {
	return &Engine{
		log:          log,
		sched:        sched,
		rng:          rng,
		sampler:      NewSampler(rng),
		bank:         bank,
		source:       source,
		wins:         wins,
		cfg:          cfg,
		status:       entities.StatusWelcome,
		timerEnabled: cfg.TimerEnabled,
	}
}

// SetOnChange registers the render callback invoked after every transition.
func (e *Engine) SetOnChange(fn func(Snapshot)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onChange = fn
}

// LoadWins reads the persisted win counter, degrading to zero on failure.
func (e *Engine) LoadWins(ctx context.Context) {
	wins, err := e.wins.Load(ctx)
	if err != nil {
		e.log.Warn("load win counter failed, starting from zero", zap.Error(err))
		wins = 0
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.winCount = wins
}

// State returns a snapshot of the current engine state.
func (e *Engine) State() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Start begins a new session: fetches a question batch (falling back on
// provider failure), merges it into the bank, samples the session and enters
// Playing. It returns once the session is ready.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	if e.status != entities.StatusWelcome && e.status != entities.StatusGameOver {
		e.mu.Unlock()
		return ErrGameInProgress
	}
	ep := e.supersedeLocked()
	e.status = entities.StatusLoading
	e.notifyLocked()
	e.mu.Unlock()

	batch, err := e.source.Fetch(ctx)
	if err != nil {
		e.log.Warn("question provider failed, relying on bank", zap.Error(err))
	}
	if len(batch) > 0 {
		e.bank.Add(ctx, batch)
	}

	pool := e.bank.Questions()

	e.mu.Lock()
	defer e.mu.Unlock()

	// The fetch ran unlocked; if the player left for the menu in the
	// meantime, the abandoned session must not be revived.
	if e.status != entities.StatusLoading || ep != e.epoch {
		return nil
	}

	if missing := Shortfall(pool); len(missing) > 0 {
		for d, n := range missing {
			e.log.Warn("difficulty pool under-filled, degrading session",
				zap.String("difficulty", string(d)),
				zap.Int("missing", n),
			)
		}
	}

	session := e.sampler.Build(pool)
	if len(session) == 0 {
		e.status = entities.StatusWelcome
		e.notifyLocked()
		return ErrNoQuestions
	}

	e.session = session
	e.index = 0
	e.fiftyUsed = false
	e.phoneUsed = false
	e.switchUsed = false
	e.resetQuestionLocked()
	e.status = entities.StatusPlaying
	e.startTimerLocked()
	e.notifyLocked()

	e.log.Info("session started",
		zap.Int("questions", len(session)),
		zap.Bool("timer", e.timerEnabled),
	)
	return nil
}

// SubmitAnswer records the player's answer for the current question. Ignored
// unless the engine is Playing and no submission is in flight; at most one
// submission is accepted per question even if a click and a timer expiry
// race each other.
func (e *Engine) SubmitAnswer(answer string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.submitLocked(answer)
}

func (e *Engine) submitLocked(answer string) {
	if e.status != entities.StatusPlaying || e.answered {
		return
	}
	if answer != NoAnswer && !e.selectableLocked(answer) {
		return
	}

	e.answered = true
	e.selected = answer
	e.status = entities.StatusAnswerSelected
	e.inSuspense = true
	e.revealed = false

	ep := e.supersedeLocked()
	e.cancelPending = e.sched.After(e.cfg.SuspenseDelay, func() {
		e.suspenseElapsed(ep)
	})
	e.notifyLocked()
}

// selectableLocked reports whether the answer exists on the current question
// and is not hidden by 50:50.
func (e *Engine) selectableLocked(answer string) bool {
	if _, hidden := e.hidden[answer]; hidden {
		return false
	}
	for _, a := range e.session[e.index].Answers {
		if a == answer {
			return true
		}
	}
	return false
}

// RevealNow shortcuts the suspense wait to an immediate reveal.
func (e *Engine) RevealNow() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.status != entities.StatusAnswerSelected || !e.inSuspense {
		return
	}
	e.revealLocked()
}

func (e *Engine) suspenseElapsed(ep uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if ep != e.epoch {
		return
	}
	e.revealLocked()
}

func (e *Engine) revealLocked() {
	e.inSuspense = false
	e.revealed = true

	q := e.session[e.index]
	correct := e.selected == q.CorrectAnswer
	wasFinal := e.index == len(e.session)-1
	e.lastCorrect = correct

	ep := e.supersedeLocked()
	switch {
	case correct && wasFinal:
		// A degraded (short) session ends here too, but only a full climb
		// pays the top prize and counts as a win.
		if e.fullRunLocked() {
			e.recordWinLocked()
		}
		e.cancelPending = e.sched.After(e.cfg.WinDelay, func() {
			e.gameOverDue(ep)
		})
	case correct:
		e.cancelPending = e.sched.After(e.cfg.AdvanceDelay, func() {
			e.advanceDue(ep)
		})
	default:
		e.log.Info("wrong answer",
			zap.Int("question", e.index),
			zap.String("final_prize", FinalPrize(e.index, false, wasFinal)),
		)
		e.cancelPending = e.sched.After(e.cfg.LossDelay, func() {
			e.gameOverDue(ep)
		})
	}
	e.notifyLocked()
}

// recordWinLocked increments the cumulative win counter exactly once per won
// session and persists it. Persistence failures are logged, the in-memory
// counter stays authoritative.
func (e *Engine) recordWinLocked() {
	e.winCount++
	wins := e.winCount
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := e.wins.Save(ctx, wins); err != nil {
			e.log.Warn("persist win counter failed", zap.Error(err))
		}
	}()
	e.log.Info("top prize won", zap.Int("wins", wins))
}

func (e *Engine) advanceDue(ep uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if ep != e.epoch || e.status != entities.StatusAnswerSelected {
		return
	}

	e.index++
	e.resetQuestionLocked()
	e.status = entities.StatusPlaying
	e.supersedeLocked()
	e.startTimerLocked()
	e.notifyLocked()
}

func (e *Engine) gameOverDue(ep uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if ep != e.epoch {
		return
	}

	e.supersedeLocked()
	e.status = entities.StatusGameOver
	e.notifyLocked()
}

// BackToMenu abandons the finished session and returns to the welcome screen.
func (e *Engine) BackToMenu() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.supersedeLocked()
	e.session = nil
	e.resetQuestionLocked()
	e.status = entities.StatusWelcome
	e.notifyLocked()
}

// SetTimerEnabled toggles the per-question countdown. Toggling it on during
// play restarts the countdown for the current question.
func (e *Engine) SetTimerEnabled(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.timerEnabled = enabled
	if e.status == entities.StatusPlaying && !e.answered {
		// No advance/reveal is pending in this state, so superseding only
		// invalidates the old countdown.
		e.supersedeLocked()
		e.secondsLeft = 0
		if enabled {
			e.startTimerLocked()
		}
	}
	e.notifyLocked()
}

// SetDeveloperMode toggles developer mode.
func (e *Engine) SetDeveloperMode(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.devMode = enabled
	e.notifyLocked()
}

// ForceCorrectAnswer submits the known-correct answer. Developer mode only.
func (e *Engine) ForceCorrectAnswer() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.devMode {
		return ErrDeveloperModeOff
	}
	if e.status != entities.StatusPlaying || e.answered {
		return ErrNotPlaying
	}
	e.submitLocked(e.session[e.index].CorrectAnswer)
	return nil
}

// ArmResetWins arms the win-counter reset. It auto-disarms after the
// configured window unless confirmed.
func (e *Engine) ArmResetWins() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cancelDisarm != nil {
		e.cancelDisarm()
	}
	e.resetArmed = true
	e.cancelDisarm = e.sched.After(e.cfg.ResetWinsWindow, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if e.resetArmed {
			e.resetArmed = false
			e.notifyLocked()
		}
	})
	e.notifyLocked()
}

// ConfirmResetWins zeroes the win counter if a reset was armed and the
// window has not elapsed.
func (e *Engine) ConfirmResetWins() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.resetArmed {
		return ErrResetNotArmed
	}
	e.resetArmed = false
	if e.cancelDisarm != nil {
		e.cancelDisarm()
		e.cancelDisarm = nil
	}

	e.winCount = 0
	wins := e.winCount
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := e.wins.Save(ctx, wins); err != nil {
			e.log.Warn("persist win counter failed", zap.Error(err))
		}
	}()
	e.notifyLocked()
	return nil
}

// startTimerLocked arms the countdown for the current question.
func (e *Engine) startTimerLocked() {
	if !e.timerEnabled {
		e.secondsLeft = 0
		return
	}

	e.secondsLeft = timerSeconds[e.session[e.index].Difficulty]
	ep := e.epoch
	e.cancelTimer = e.sched.Every(e.cfg.TickInterval, func() {
		e.tick(ep)
	})
}

func (e *Engine) tick(ep uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if ep != e.epoch || e.status != entities.StatusPlaying || e.answered {
		return
	}

	e.secondsLeft--
	if e.secondsLeft <= 0 {
		e.secondsLeft = 0
		e.submitLocked(NoAnswer)
		return
	}
	e.notifyLocked()
}

// supersedeLocked invalidates every scheduled callback armed for the state
// being left and returns the new epoch. Callbacks compare their captured
// epoch against the current one before mutating anything, so even a callback
// that already fired and is waiting on the mutex becomes a no-op.
func (e *Engine) supersedeLocked() uint64 {
	if e.cancelTimer != nil {
		e.cancelTimer()
		e.cancelTimer = nil
	}
	if e.cancelPending != nil {
		e.cancelPending()
		e.cancelPending = nil
	}
	e.epoch++
	return e.epoch
}

// fullRunLocked reports whether the current question is the last rung of a
// full-length session. Only that question can pay the top prize.
func (e *Engine) fullRunLocked() bool {
	return len(e.session) == SessionLength && e.index == len(e.session)-1
}

// resetQuestionLocked clears the per-question view state.
func (e *Engine) resetQuestionLocked() {
	e.selected = ""
	e.answered = false
	e.inSuspense = false
	e.revealed = false
	e.lastCorrect = false
	e.hidden = nil
	e.suggested = ""
	e.secondsLeft = 0
}

func (e *Engine) snapshotLocked() Snapshot {
	s := Snapshot{
		Status:          e.status,
		Index:           e.index,
		Total:           len(e.session),
		Rung:            RungFor(e.index),
		SelectedAnswer:  e.selected,
		InSuspense:      e.inSuspense,
		Revealed:        e.revealed,
		Correct:         e.lastCorrect,
		SuggestedAnswer: e.suggested,
		FiftyFiftyUsed:  e.fiftyUsed,
		PhoneFriendUsed: e.phoneUsed,
		SwitchUsed:      e.switchUsed,
		TimerEnabled:    e.timerEnabled,
		SecondsLeft:     e.secondsLeft,
		DeveloperMode:   e.devMode,
		Wins:            e.winCount,
		ResetArmed:      e.resetArmed,
	}

	if e.index < len(e.session) &&
		(e.status == entities.StatusPlaying || e.status == entities.StatusAnswerSelected) {
		s.Question = e.session[e.index]
	}
	for a := range e.hidden {
		s.HiddenAnswers = append(s.HiddenAnswers, a)
	}
	if e.revealed || e.status == entities.StatusGameOver {
		s.FinalPrize = FinalPrize(e.index, e.lastCorrect, e.fullRunLocked())
	}

	return s
}

func (e *Engine) notifyLocked() {
	if e.onChange != nil {
		e.onChange(e.snapshotLocked())
	}
}
