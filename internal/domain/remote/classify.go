package remote

import (
	"strings"

	"github.com/GriffinCanCode/teveclub/internal/domain/markers"
)

// LoginVerdict is what a login response body says
type LoginVerdict int

const (
	LoginUnrecognized LoginVerdict = iota
	LoginAccepted
	LoginRejected
)

// ClassifyLogin checks the success marker before the failure marker,
// so malformed pages carrying both count as a successful login.
func ClassifyLogin(body string, m markers.Set) LoginVerdict {
	switch {
	case markers.Contains(body, m.LoginSuccess):
		return LoginAccepted
	case markers.Contains(body, m.LoginFailure):
		return LoginRejected
	default:
		return LoginUnrecognized
	}
}

// ProbeVerdict is what the pet page says about feeding
type ProbeVerdict int

const (
	ProbeFull ProbeVerdict = iota
	ProbeCanFeed
)

// ClassifyFeedProbe reports whether the feeding form is offered
func ClassifyFeedProbe(body string, m markers.Set) ProbeVerdict {
	if markers.Contains(body, m.FeedAvailable) {
		return ProbeCanFeed
	}
	return ProbeFull
}

// SubmissionVerdict is what a feed submission response says
type SubmissionVerdict int

const (
	SubmissionHungry SubmissionVerdict = iota
	SubmissionSated
)

// ClassifyFeedSubmission reports whether the pet announced it is satisfied
func ClassifyFeedSubmission(body string, m markers.Set) SubmissionVerdict {
	if markers.ContainsAny(body, m.Satiety) {
		return SubmissionSated
	}
	return SubmissionHungry
}

// LearnVerdict is what the teaching page says
type LearnVerdict int

const (
	// LearnNothing covers both "no tricks left" and unrecognised pages
	LearnNothing LearnVerdict = iota
	LearnLearned
	LearnChoice
	LearnExhausted
)

// ClassifyLearn maps a teaching page to a verdict. Learned wins over the
// other markers; an explicit "nothing left" page is kept apart from an
// unrecognised one for logging only.
func ClassifyLearn(body string, m markers.Set) LearnVerdict {
	switch {
	case markers.Contains(body, m.Learned):
		return LearnLearned
	case markers.Contains(body, m.LearnExhausted):
		return LearnExhausted
	case markers.Contains(body, m.LearnChoice):
		return LearnChoice
	default:
		return LearnNothing
	}
}

// PreferenceVerdict is what a food or drink change response says
type PreferenceVerdict int

const (
	PreferenceEmpty PreferenceVerdict = iota
	PreferenceApplied
)

// ClassifyPreference accepts any non-blank body; the site prints no marker
func ClassifyPreference(body string) PreferenceVerdict {
	if strings.TrimSpace(body) == "" {
		return PreferenceEmpty
	}
	return PreferenceApplied
}
