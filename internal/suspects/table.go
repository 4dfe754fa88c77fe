package suspects

// Size is the number of buckets in a Table
const Size = 101

// Hash maps a clue to its bucket index in [0, Size).
// The accumulator wraps at 32 bits.
func Hash(clue string) int {
	var h uint32
	for i := 0; i < len(clue); i++ {
		h = h*131 + uint32(clue[i])
	}
	return int(h % Size)
}

type entry struct {
	clue    string
	suspect string
	next    *entry
}

// Table maps clues to the suspect they incriminate using separate chaining
type Table struct {
	buckets [Size]*entry
	count   int
}

// NewTable creates an empty table
func NewTable() *Table {
	return &Table{}
}

// Insert associates a clue with a suspect. Existing associations for the
// same clue are not removed; the newest one shadows them on Lookup.
func (t *Table) Insert(clue, suspect string) {
	idx := Hash(clue)
	t.buckets[idx] = &entry{
		clue:    clue,
		suspect: suspect,
		next:    t.buckets[idx],
	}
	t.count++
}

// Lookup returns the suspect associated with the clue
func (t *Table) Lookup(clue string) (string, bool) {
	for e := t.buckets[Hash(clue)]; e != nil; e = e.next {
		if e.clue == clue {
			return e.suspect, true
		}
	}
	return "", false
}

// Len returns the number of stored associations, shadowed ones included
func (t *Table) Len() int {
	return t.count
}

// Bucket returns the number of entries chained in bucket i
func (t *Table) Bucket(i int) int {
	if i < 0 || i >= Size {
		return 0
	}
	n := 0
	for e := t.buckets[i]; e != nil; e = e.next {
		n++
	}
	return n
}

// Association is a clue/suspect pair
type Association struct {
	Clue    string `json:"clue"`
	Suspect string `json:"suspect"`
}

// Associations lists the visible associations in bucket order, newest first
// within a bucket. Shadowed entries are skipped.
func (t *Table) Associations() []Association {
	var out []Association
	for _, head := range t.buckets {
		seen := make(map[string]struct{})
		for e := head; e != nil; e = e.next {
			if _, ok := seen[e.clue]; ok {
				continue
			}
			seen[e.clue] = struct{}{}
			out = append(out, Association{Clue: e.clue, Suspect: e.suspect})
		}
	}
	return out
}
