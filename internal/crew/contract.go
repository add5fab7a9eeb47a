package crew

import "time"

// ContractStatus is derived from contract dates relative to a reference day.
type ContractStatus string

const (
	ContractPending  ContractStatus = "PENDING"
	ContractActive   ContractStatus = "ACTIVE"
	ContractExpiring ContractStatus = "EXPIRING"
	ContractExpired  ContractStatus = "EXPIRED"
)

// ExpiringWindow is how close to its end a running contract counts as expiring.
const ExpiringWindow = 30 * 24 * time.Hour

// ClassifyContract derives the status of c on the day of now. Dates are
// compared at day granularity so a contract ending today is still expiring.
func ClassifyContract(c Contract, now time.Time) ContractStatus {
	today := truncateDay(now)
	if !c.Start.IsZero() && truncateDay(c.Start).After(today) {
		return ContractPending
	}
	if c.End.IsZero() {
		return ContractActive
	}
	end := truncateDay(c.End)
	switch {
	case end.Before(today):
		return ContractExpired
	case end.Sub(today) <= ExpiringWindow:
		return ContractExpiring
	default:
		return ContractActive
	}
}

// DaysRemaining returns whole days until the contract ends, negative once
// it has ended. ok is false for open-ended contracts.
func DaysRemaining(c Contract, now time.Time) (days int, ok bool) {
	if c.End.IsZero() {
		return 0, false
	}
	return DaysUntil(c.End, now), true
}

// DaysUntil counts calendar days from the day of now to the day of t,
// negative when t is earlier.
func DaysUntil(t, now time.Time) int {
	return int(truncateDay(t).Sub(truncateDay(now)).Hours() / 24)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
