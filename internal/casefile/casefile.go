package casefile

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/kumarlokesh/detective-quest/internal/mansion"
	"github.com/kumarlokesh/detective-quest/internal/suspects"
)

// ErrInvalidCase is wrapped by every validation failure
var ErrInvalidCase = errors.New("invalid case")

// Case describes a mansion, its clues and the suspects they point to
type Case struct {
	Title    string       `toml:"title"`
	Root     string       `toml:"root"`
	Rooms    []RoomDef    `toml:"rooms"`
	Suspects []SuspectDef `toml:"suspects"`
	Evidence []Evidence   `toml:"evidence"`
}

// RoomDef declares one room and the names of the rooms behind its exits
type RoomDef struct {
	Name  string `toml:"name"`
	Clue  string `toml:"clue"`
	Left  string `toml:"left"`
	Right string `toml:"right"`
}

// SuspectDef is an entry of the suspect roster
type SuspectDef struct {
	Name string `toml:"name"`
}

// Evidence links a clue to the suspect it incriminates
type Evidence struct {
	Clue    string `toml:"clue"`
	Suspect string `toml:"suspect"`
}

// Load decodes and validates a TOML case file
func Load(path string) (*Case, error) {
	var c Case
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return nil, fmt.Errorf("failed to decode case file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown key %q in %s", ErrInvalidCase, undecoded[0].String(), path)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks that the rooms form a single tree rooted at Root and that
// all evidence refers to rostered suspects
func (c *Case) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("%w: no root room", ErrInvalidCase)
	}

	rooms := make(map[string]RoomDef, len(c.Rooms))
	for _, r := range c.Rooms {
		if r.Name == "" {
			return fmt.Errorf("%w: room without a name", ErrInvalidCase)
		}
		if _, dup := rooms[r.Name]; dup {
			return fmt.Errorf("%w: duplicate room %q", ErrInvalidCase, r.Name)
		}
		rooms[r.Name] = r
	}
	if _, ok := rooms[c.Root]; !ok {
		return fmt.Errorf("%w: root room %q is not declared", ErrInvalidCase, c.Root)
	}

	parents := make(map[string]string, len(c.Rooms))
	for _, r := range c.Rooms {
		for _, child := range []string{r.Left, r.Right} {
			if child == "" {
				continue
			}
			if _, ok := rooms[child]; !ok {
				return fmt.Errorf("%w: room %q leads to unknown room %q", ErrInvalidCase, r.Name, child)
			}
			if child == c.Root {
				return fmt.Errorf("%w: room %q leads back to the root", ErrInvalidCase, r.Name)
			}
			if p, ok := parents[child]; ok {
				return fmt.Errorf("%w: room %q is reachable from both %q and %q", ErrInvalidCase, child, p, r.Name)
			}
			parents[child] = r.Name
		}
	}

	// every room must hang off the root, otherwise it sits on a cycle or
	// is an orphan
	reached := make(map[string]bool, len(rooms))
	queue := []string{c.Root}
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if reached[name] {
			continue
		}
		reached[name] = true
		r := rooms[name]
		for _, child := range []string{r.Left, r.Right} {
			if child != "" {
				queue = append(queue, child)
			}
		}
	}
	for _, r := range c.Rooms {
		if !reached[r.Name] {
			return fmt.Errorf("%w: room %q is not reachable from %q", ErrInvalidCase, r.Name, c.Root)
		}
	}

	roster := make(map[string]struct{}, len(c.Suspects))
	for _, s := range c.Suspects {
		if s.Name == "" {
			return fmt.Errorf("%w: suspect without a name", ErrInvalidCase)
		}
		roster[s.Name] = struct{}{}
	}
	for _, e := range c.Evidence {
		if e.Clue == "" || e.Suspect == "" {
			return fmt.Errorf("%w: evidence needs both a clue and a suspect", ErrInvalidCase)
		}
		if len(roster) > 0 {
			if _, ok := roster[e.Suspect]; !ok {
				return fmt.Errorf("%w: evidence names %q who is not on the roster", ErrInvalidCase, e.Suspect)
			}
		}
	}

	return nil
}

// Build links the rooms into a mansion tree and loads the evidence into a
// suspect table, in declaration order
func (c *Case) Build() (*mansion.Tree, *suspects.Table, error) {
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}

	nodes := make(map[string]*mansion.Room, len(c.Rooms))
	for _, r := range c.Rooms {
		nodes[r.Name] = mansion.NewRoom(r.Name, r.Clue)
	}
	for _, r := range c.Rooms {
		nodes[r.Name].Link(nodes[r.Left], nodes[r.Right])
	}

	tree, err := mansion.New(nodes[c.Root])
	if err != nil {
		return nil, nil, err
	}

	table := suspects.NewTable()
	for _, e := range c.Evidence {
		table.Insert(e.Clue, e.Suspect)
	}

	return tree, table, nil
}

// Roster returns the suspect names in declaration order. When the case
// declares no roster the names are taken from the evidence.
func (c *Case) Roster() []string {
	var names []string
	seen := make(map[string]struct{})
	add := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	if len(c.Suspects) > 0 {
		for _, s := range c.Suspects {
			add(s.Name)
		}
		return names
	}
	for _, e := range c.Evidence {
		add(e.Suspect)
	}
	return names
}
