package source

import "slices"

// StringID indexes into an Interner's string table.
type StringID uint32

// NoStringID marks the absence of an interned string.
const NoStringID StringID = 0

// Interner hash-conses strings (identifiers, string literal contents) so
// later stages compare identities instead of bytes.
type Interner struct {
	byID  []string
	index map[string]StringID
}

func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": NoStringID},
	}
}

// Intern returns the stable StringID for s, allocating one on first sight.
func (in *Interner) Intern(s string) StringID {
	if id, ok := in.index[s]; ok {
		return id
	}
	cpy := string([]byte(s))
	id := StringID(len(in.byID))
	in.byID = append(in.byID, cpy)
	in.index[cpy] = id
	return id
}

func (in *Interner) InternBytes(b []byte) StringID {
	return in.Intern(string(b))
}

func (in *Interner) Lookup(id StringID) (string, bool) {
	if !in.Has(id) {
		return "", false
	}
	return in.byID[id], true
}

func (in *Interner) MustLookup(id StringID) string {
	s, ok := in.Lookup(id)
	if !ok {
		panic("source: invalid StringID")
	}
	return s
}

func (in *Interner) Has(id StringID) bool {
	return int(id) >= 0 && int(id) < len(in.byID)
}

func (in *Interner) Len() int { return len(in.byID) }

func (in *Interner) Snapshot() []string { return slices.Clone(in.byID) }
