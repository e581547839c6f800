package diag

// Ranging is a half-open byte range [From, To) within a source text. Types
// that carry a source position embed it to satisfy [Ranger].
type Ranging struct {
	From int
	To   int
}

// Ranger is anything that knows its range within a source text.
type Ranger interface {
	Range() Ranging
}

// Range returns the receiver, satisfying [Ranger].
func (r Ranging) Range() Ranging { return r }

// PointRanging returns an empty range at p.
func PointRanging(p int) Ranging { return Ranging{p, p} }

// MixedRanging returns the range spanning from the start of a to the end
// of b.
func MixedRanging(a, b Ranger) Ranging {
	return Ranging{a.Range().From, b.Range().To}
}
