package types

import "fmt"

// Step names an action within an auto run
type Step string

const (
	StepLogin  Step = "login"
	StepFeed   Step = "feed"
	StepLearn  Step = "learn"
	StepGuess  Step = "guess"
	StepLogout Step = "logout"
)

// ReportStatus is the user-facing verdict of an auto run
type ReportStatus string

const (
	StatusSuccess ReportStatus = "success"
	StatusWarning ReportStatus = "warning"
	StatusFailure ReportStatus = "failure"
)

// StepResult records one step of an auto run
type StepResult struct {
	Step    Step         `json:"step"`
	Result  ActionResult `json:"result"`
	Warning bool         `json:"warning"`
}

// AutoRunReport is the ordered outcome of one auto run
type AutoRunReport struct {
	Steps  []StepResult `json:"steps"`
	Status ReportStatus `json:"status"`
}

// Step returns the recorded result for a step, if it ran
func (r AutoRunReport) Step(step Step) (StepResult, bool) {
	for _, s := range r.Steps {
		if s.Step == step {
			return s, true
		}
	}
	return StepResult{}, false
}

// Warnings counts steps that failed without aborting the run
func (r AutoRunReport) Warnings() int {
	n := 0
	for _, s := range r.Steps {
		if s.Warning {
			n++
		}
	}
	return n
}

// Summary renders a one-line description of the run
func (r AutoRunReport) Summary() string {
	switch r.Status {
	case StatusSuccess:
		if n := r.Warnings(); n > 0 {
			return fmt.Sprintf("auto run finished with %d warning(s)", n)
		}
		return "auto run finished"
	case StatusWarning:
		return "auto run finished, logout failed"
	default:
		if len(r.Steps) > 0 {
			return "auto run aborted: " + r.Steps[0].Result.Message
		}
		return "auto run aborted"
	}
}
