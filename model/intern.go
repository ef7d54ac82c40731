package model

// Interner deduplicates repeated strings (span names, categories) within a
// single profile. Parsers intern every name they read off the wire so that
// a profile with a million samples of the same function keeps one copy of
// its name.
type Interner struct {
	table map[string]string
}

// NewInterner returns an empty interner.
func NewInterner() *Interner {
	return &Interner{table: make(map[string]string)}
}

// Intern returns the canonical copy of s, recording s as canonical the
// first time it's seen.
func (in *Interner) Intern(s string) string {
	if s == "" {
		return ""
	}
	if v, ok := in.table[s]; ok {
		return v
	}
	in.table[s] = s
	return s
}

// Len reports the number of distinct strings interned so far.
func (in *Interner) Len() int {
	return len(in.table)
}
