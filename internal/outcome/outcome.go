package outcome

// Outcome is the normalized result of a single drill attempt.
type Outcome string

const (
	Perfect         Outcome = "perfect"
	SlowSuccess     Outcome = "slow_success"
	SuccessWithHint Outcome = "success_with_hint"
	Failure         Outcome = "failure"
	Abandoned       Outcome = "abandoned"
)

// All returns every outcome from best to worst.
func All() []Outcome {
	return []Outcome{Perfect, SlowSuccess, SuccessWithHint, Failure, Abandoned}
}

// Valid reports whether o is one of the known outcomes.
func (o Outcome) Valid() bool {
	switch o {
	case Perfect, SlowSuccess, SuccessWithHint, Failure, Abandoned:
		return true
	}
	return false
}

// IsSuccess reports whether the learner reached the solution, with or without help.
func (o Outcome) IsSuccess() bool {
	return o == Perfect || o == SlowSuccess || o == SuccessWithHint
}

// DisplayName returns a human-readable label for the outcome.
func (o Outcome) DisplayName() string {
	switch o {
	case Perfect:
		return "Perfect"
	case SlowSuccess:
		return "Solved (slow)"
	case SuccessWithHint:
		return "Solved with help"
	case Failure:
		return "Missed"
	case Abandoned:
		return "Gave up"
	default:
		return string(o)
	}
}
