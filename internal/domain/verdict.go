package domain

// Verdict is the timing classification of an event.
type Verdict string

const (
	VerdictSoon    Verdict = "soon"
	VerdictAdvance Verdict = "advance"
	VerdictSkip    Verdict = "skip"
)

func (v Verdict) String() string {
	return string(v)
}

// IsActionable is false for VerdictSkip.
func (v Verdict) IsActionable() bool {
	return v == VerdictSoon || v == VerdictAdvance
}
