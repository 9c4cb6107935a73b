package domain

// Outcome is the per-event result of a reminder check run. Suppressed,
// NotYetActionable and AlreadySent mean nothing was sent on purpose and are
// not failures.
type Outcome string

const (
	OutcomeSent             Outcome = "sent"
	OutcomeSuppressed       Outcome = "suppressed"
	OutcomeNotYetActionable Outcome = "not_yet_actionable"
	OutcomeAlreadySent      Outcome = "already_sent"
	OutcomeFailed           Outcome = "failed"
)

func (o Outcome) String() string {
	return string(o)
}

func (o Outcome) IsFailure() bool {
	return o == OutcomeFailed
}
