package game

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Tier selects how much of the investigation is played
type Tier string

const (
	// TierNovice only walks the mansion
	TierNovice Tier = "novice"
	// TierAdventurer also collects clues and lists them at the end
	TierAdventurer Tier = "adventurer"
	// TierMaster adds the suspect roster, the accusation and the verdict
	TierMaster Tier = "master"
)

// ParseTier validates a tier name
func ParseTier(s string) (Tier, error) {
	switch t := Tier(strings.ToLower(s)); t {
	case TierNovice, TierAdventurer, TierMaster:
		return t, nil
	default:
		return "", fmt.Errorf("unknown tier %q", s)
	}
}

// CollectsClues reports whether rooms hand over their clues
func (t Tier) CollectsClues() bool {
	return t == TierAdventurer || t == TierMaster
}

// HasVerdict reports whether the walk ends with an accusation
func (t Tier) HasVerdict() bool {
	return t == TierMaster
}

// State is the walk state
type State string

const (
	// StateExploring means the player is in a room with at least one exit
	StateExploring State = "exploring"
	// StateLeaf means the walk ended in a room without exits
	StateLeaf State = "leaf"
	// StateQuit means the player left the mansion
	StateQuit State = "quit"
)

// Done reports whether the walk is over
func (s State) Done() bool {
	return s == StateLeaf || s == StateQuit
}

// Choice is a navigation command
type Choice int

const (
	// ChoiceLeft takes the left exit
	ChoiceLeft Choice = iota
	// ChoiceRight takes the right exit
	ChoiceRight
	// ChoiceQuit ends the walk
	ChoiceQuit
)

// String returns the key that selects the choice
func (c Choice) String() string {
	switch c {
	case ChoiceLeft:
		return "e"
	case ChoiceRight:
		return "d"
	case ChoiceQuit:
		return "s"
	default:
		return "?"
	}
}

// Common errors
var (
	// ErrInvalidChoice is returned for input other than e, d or s
	ErrInvalidChoice = errors.New("invalid choice")
	// ErrNoPath is returned when the chosen exit does not exist
	ErrNoPath = errors.New("no path in that direction")
	// ErrWalkOver is returned when moving after the walk ended
	ErrWalkOver = errors.New("walk is over")
	// ErrWalkInProgress is returned when accusing before the walk ended
	ErrWalkInProgress = errors.New("walk is still in progress")
	// ErrUnknownRoom is returned when restoring a walk into a room the map lacks
	ErrUnknownRoom = errors.New("unknown room")
)

// ParseChoice reads the first non-space character of a line of input.
// Anything after it is ignored.
func ParseChoice(input string) (Choice, error) {
	s := strings.TrimLeftFunc(input, unicode.IsSpace)
	if s == "" {
		return 0, fmt.Errorf("%w: empty input", ErrInvalidChoice)
	}
	switch s[0] {
	case 'e', 'E':
		return ChoiceLeft, nil
	case 'd', 'D':
		return ChoiceRight, nil
	case 's', 'S':
		return ChoiceQuit, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidChoice, firstRune(s))
	}
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}
