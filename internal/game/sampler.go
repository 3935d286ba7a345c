package game

import (
	"math/rand"

	"github.com/ddelfanti/fisica-milionaria-bot/internal/domain/entities"
)

// bandQuota describes how many questions one session band draws from each of
// its two adjacent difficulty pools.
type bandQuota struct {
	lower      entities.Difficulty // the easier of the two pools
	upper      entities.Difficulty // the harder of the two pools
	lowerCount int
	upperCount int
}

// bandQuotas partitions the 15-question session into three escalating bands.
// Bands sharing a pool draw disjoint slices of its shuffled order, so a
// question can never be selected twice.
var bandQuotas = []bandQuota{
	{lower: entities.DifficultyEasy, upper: entities.DifficultyMediumHard, lowerCount: 3, upperCount: 2},
	{lower: entities.DifficultyMediumHard, upper: entities.DifficultyVeryHard, lowerCount: 3, upperCount: 2},
	{lower: entities.DifficultyVeryHard, upper: entities.DifficultyExpert, lowerCount: 3, upperCount: 2},
}

// Sampler draws the ordered question sequence for one play-through from the
// bank. The random source is injectable for deterministic tests.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler creates a Sampler using the given random source.
func NewSampler(rng *rand.Rand) *Sampler {
	return &Sampler{rng: rng}
}

// Build assembles a session from the bank: each difficulty pool is shuffled
// uniformly, each band takes its slice from two adjacent pools, and each band
// is shuffled again before concatenation so difficulties mix within a band
// while the bands still escalate.
//
// A pool that runs short contributes what it has; the session may then be
// shorter than SessionLength. Shortfall reporting is the caller's concern,
// see Shortfall.
func (s *Sampler) Build(bank []entities.Question) []entities.Question {
	pools := partitionByDifficulty(bank)
	for _, pool := range pools {
		s.rng.Shuffle(len(pool), func(i, j int) {
			pool[i], pool[j] = pool[j], pool[i]
		})
	}

	// Per-pool cursors keep band slices disjoint.
	cursors := make(map[entities.Difficulty]int, len(pools))
	take := func(d entities.Difficulty, n int) []entities.Question {
		pool := pools[d]
		start := cursors[d]
		end := start + n
		if end > len(pool) {
			end = len(pool)
		}
		cursors[d] = end
		return pool[start:end]
	}

	session := make([]entities.Question, 0, SessionLength)
	for _, q := range bandQuotas {
		band := append([]entities.Question{}, take(q.lower, q.lowerCount)...)
		band = append(band, take(q.upper, q.upperCount)...)
		s.rng.Shuffle(len(band), func(i, j int) {
			band[i], band[j] = band[j], band[i]
		})
		session = append(session, band...)
	}

	return session
}

// Shortfall returns how many questions each difficulty band is missing for a
// full session given the bank contents.
func Shortfall(bank []entities.Question) map[entities.Difficulty]int {
	have := make(map[entities.Difficulty]int, len(entities.Difficulties))
	for _, q := range bank {
		have[q.Difficulty]++
	}

	want := make(map[entities.Difficulty]int, len(entities.Difficulties))
	for _, b := range bandQuotas {
		want[b.lower] += b.lowerCount
		want[b.upper] += b.upperCount
	}

	missing := make(map[entities.Difficulty]int)
	for d, w := range want {
		if have[d] < w {
			missing[d] = w - have[d]
		}
	}
	return missing
}

// SwitchCandidates returns the bank questions eligible to replace the
// question at session index idx via the switch lifeline: same difficulty and
// a text that appears nowhere in the session.
func SwitchCandidates(bank, session []entities.Question, idx int) []entities.Question {
	if idx < 0 || idx >= len(session) {
		return nil
	}

	inSession := make(map[string]struct{}, len(session))
	for _, q := range session {
		inSession[q.Text] = struct{}{}
	}

	var out []entities.Question
	for _, q := range bank {
		if q.Difficulty != session[idx].Difficulty {
			continue
		}
		if _, ok := inSession[q.Text]; ok {
			continue
		}
		out = append(out, q)
	}
	return out
}

func partitionByDifficulty(bank []entities.Question) map[entities.Difficulty][]entities.Question {
	pools := make(map[entities.Difficulty][]entities.Question, len(entities.Difficulties))
	for _, q := range bank {
		pools[q.Difficulty] = append(pools[q.Difficulty], q)
	}
	return pools
}
