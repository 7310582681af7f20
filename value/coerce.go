package value

// BooleanPair is a truthy and a falsy literal.
type BooleanPair struct {
	True  string
	False string
}

// CoercionTable lists the two-literal alternatives that are read as booleans.
// Entries are matched by exact string equality, in order.
type CoercionTable []BooleanPair

// DefaultCoercions is the table used unless a caller supplies its own.
var DefaultCoercions = CoercionTable{
	{"yes", "no"},
	{"Yes", "No"},
	{"YES", "NO"},
	{"y", "n"},
	{"Y", "N"},
	{"enabled", "disabled"},
	{"Enabled", "Disabled"},
	{"ENABLED", "DISABLED"},
}

// Match returns the entry whose literals are first and second, in that order.
func (t CoercionTable) Match(first, second string) (BooleanPair, bool) {
	for _, p := range t {
		if p.True == first && p.False == second {
			return p, true
		}
	}
	return BooleanPair{}, false
}

// With returns a copy of t with extra pairs appended.
func (t CoercionTable) With(pairs ...BooleanPair) CoercionTable {
	out := make(CoercionTable, 0, len(t)+len(pairs))
	out = append(out, t...)
	return append(out, pairs...)
}
