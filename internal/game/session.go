package game

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/kumarlokesh/detective-quest/internal/clues"
	"github.com/kumarlokesh/detective-quest/internal/mansion"
)

// Session is one walk through the mansion. It is not safe for concurrent use.
type Session struct {
	id        string
	tree      *mansion.Tree
	current   *mansion.Room
	clues     *clues.Tree
	collected []string
	state     State
	tier      Tier
	threshold int
	verdict   *Verdict
	logger    zerolog.Logger
}

// Option configures a Session
type Option func(*Session)

// WithID tags the session, for logging and snapshots
func WithID(id string) Option {
	return func(s *Session) {
		s.id = id
	}
}

// WithTier sets the tier. The default is TierMaster.
func WithTier(t Tier) Option {
	return func(s *Session) {
		s.tier = t
	}
}

// WithThreshold sets how many clues must point at the accused for a win
func WithThreshold(n int) Option {
	return func(s *Session) {
		s.threshold = n
	}
}

// WithLogger sets the logger used for walk events
func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// DefaultThreshold is the number of supporting clues needed to win
const DefaultThreshold = 2

// NewSession starts a walk in the root room, collecting its clue
func NewSession(tree *mansion.Tree, opts ...Option) *Session {
	s := &Session{
		tree:      tree,
		clues:     clues.New(),
		tier:      TierMaster,
		threshold: DefaultThreshold,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With().Str("session", s.id).Logger()

	s.enter(tree.Root())
	return s
}

// enter moves the player into r, collecting its clue and ending the walk
// when r has no exits
func (s *Session) enter(r *mansion.Room) {
	s.current = r
	s.state = StateExploring

	if s.tier.CollectsClues() && r.HasClue() {
		s.clues.Insert(r.Clue)
		s.collected = append(s.collected, r.Clue)
		s.logger.Debug().Str("room", r.Name).Str("clue", r.Clue).Msg("Clue collected")
	}
	if r.IsLeaf() {
		s.state = StateLeaf
		s.logger.Debug().Str("room", r.Name).Msg("Reached a room without exits")
	}
}

// Apply executes a navigation choice. Errors leave the session unchanged.
func (s *Session) Apply(c Choice) error {
	if s.state.Done() {
		return ErrWalkOver
	}

	var dir mansion.Direction
	switch c {
	case ChoiceQuit:
		s.state = StateQuit
		s.logger.Debug().Str("room", s.current.Name).Msg("Player quit")
		return nil
	case ChoiceLeft:
		dir = mansion.Left
	case ChoiceRight:
		dir = mansion.Right
	default:
		return fmt.Errorf("%w: %d", ErrInvalidChoice, c)
	}

	next := s.current.Child(dir)
	if next == nil {
		return fmt.Errorf("%w: no %s exit from %s", ErrNoPath, dir, s.current.Name)
	}

	s.logger.Debug().Str("from", s.current.Name).Str("to", next.Name).Msg("Moved")
	s.enter(next)
	return nil
}

// ID returns the session tag
func (s *Session) ID() string {
	return s.id
}

// Tier returns the session tier
func (s *Session) Tier() Tier {
	return s.tier
}

// Current returns the room the player is in
func (s *Session) Current() *mansion.Room {
	return s.current
}

// State returns the walk state
func (s *Session) State() State {
	return s.state
}

// Done reports whether the walk is over
func (s *Session) Done() bool {
	return s.state.Done()
}

// Clues returns the collected clue tree
func (s *Session) Clues() *clues.Tree {
	return s.clues
}

// Collected returns the clues in the order they were found
func (s *Session) Collected() []string {
	out := make([]string, len(s.collected))
	copy(out, s.collected)
	return out
}

// Verdict returns the verdict once an accusation was made
func (s *Session) Verdict() *Verdict {
	return s.verdict
}
