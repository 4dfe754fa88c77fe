package game

import (
	"errors"

	"github.com/kumarlokesh/detective-quest/internal/clues"
	"github.com/kumarlokesh/detective-quest/internal/suspects"
)

var (
	// ErrNoVerdict is returned when accusing in a tier without a verdict
	ErrNoVerdict = errors.New("tier has no verdict")
	// ErrAlreadyJudged is returned on a second accusation
	ErrAlreadyJudged = errors.New("accusation already made")
)

// Verdict is the outcome of an accusation
type Verdict struct {
	Accused   string `json:"accused"`
	Count     int    `json:"count"`
	Threshold int    `json:"threshold"`
	Won       bool   `json:"won"`
}

// Evaluate counts the collected clues whose suspect is exactly accused.
// Clues missing from the table count for nobody.
func Evaluate(collected *clues.Tree, table *suspects.Table, accused string, threshold int) Verdict {
	count := 0
	collected.Traverse(func(clue string) bool {
		if suspect, ok := table.Lookup(clue); ok && suspect == accused {
			count++
		}
		return true
	})

	return Verdict{
		Accused:   accused,
		Count:     count,
		Threshold: threshold,
		Won:       count >= threshold,
	}
}

// Accuse evaluates the accusation against the clues of a finished walk
func (s *Session) Accuse(table *suspects.Table, accused string) (Verdict, error) {
	if !s.tier.HasVerdict() {
		return Verdict{}, ErrNoVerdict
	}
	if !s.state.Done() {
		return Verdict{}, ErrWalkInProgress
	}
	if s.verdict != nil {
		return Verdict{}, ErrAlreadyJudged
	}

	v := Evaluate(s.clues, table, accused, s.threshold)
	s.verdict = &v

	s.logger.Info().
		Str("accused", v.Accused).
		Int("count", v.Count).
		Bool("won", v.Won).
		Msg("Verdict reached")
	return v, nil
}
