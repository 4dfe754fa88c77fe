package game

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/kumarlokesh/detective-quest/internal/clues"
	"github.com/kumarlokesh/detective-quest/internal/mansion"
)

// Snapshot is the persistable state of a session
type Snapshot struct {
	ID        string   `json:"id"`
	Tier      Tier     `json:"tier"`
	Room      string   `json:"room"`
	Clues     []string `json:"clues"`
	State     State    `json:"state"`
	Threshold int      `json:"threshold"`
	Verdict   *Verdict `json:"verdict,omitempty"`
}

// Snapshot captures the session. Clues are kept in the order they were
// found so that a restored clue tree has the same shape.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		ID:        s.id,
		Tier:      s.tier,
		Room:      s.current.Name,
		Clues:     s.Collected(),
		State:     s.state,
		Threshold: s.threshold,
	}
	if s.verdict != nil {
		v := *s.verdict
		snap.Verdict = &v
	}
	return snap
}

// Restore rebuilds a session from a snapshot taken on the same map
func Restore(tree *mansion.Tree, snap Snapshot, logger zerolog.Logger) (*Session, error) {
	room := tree.Find(snap.Room)
	if room == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRoom, snap.Room)
	}

	switch snap.State {
	case StateExploring, StateLeaf, StateQuit:
	default:
		return nil, fmt.Errorf("invalid walk state %q", snap.State)
	}

	tier, err := ParseTier(string(snap.Tier))
	if err != nil {
		return nil, err
	}

	s := &Session{
		id:        snap.ID,
		tree:      tree,
		current:   room,
		clues:     clues.New(),
		state:     snap.State,
		tier:      tier,
		threshold: snap.Threshold,
		logger:    logger.With().Str("session", snap.ID).Logger(),
	}
	for _, c := range snap.Clues {
		s.clues.Insert(c)
		s.collected = append(s.collected, c)
	}
	if snap.Verdict != nil {
		v := *snap.Verdict
		s.verdict = &v
	}
	return s, nil
}
