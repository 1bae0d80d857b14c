package wizard

// Step selects which part of the draft the wizard is showing.
type Step int

const (
	StepDetails Step = iota + 1
	StepFrameworks
	StepKPIs
	StepAnalysis
	StepReview
)

const (
	FirstStep = StepDetails
	LastStep  = StepReview
)

func (s Step) Next() Step {
	return clamp(s + 1)
}

func (s Step) Previous() Step {
	return clamp(s - 1)
}

func (s Step) String() string {
	switch s {
	case StepDetails:
		return "details"
	case StepFrameworks:
		return "frameworks"
	case StepKPIs:
		return "kpis"
	case StepAnalysis:
		return "analysis"
	case StepReview:
		return "review"
	default:
		return "unknown"
	}
}

func clamp(s Step) Step {
	if s < FirstStep {
		return FirstStep
	}
	if s > LastStep {
		return LastStep
	}
	return s
}
