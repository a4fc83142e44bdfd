package remote

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GriffinCanCode/teveclub/internal/domain/markers"
)

func TestClassifyLogin(t *testing.T) {
	m := markers.Default()

	tests := []struct {
		name string
		body string
		want LoginVerdict
	}{
		{"success marker", "<h1>Teve Legyen Veled!</h1>", LoginAccepted},
		{"failure marker", "<p>Hibás név vagy jelszó</p>", LoginRejected},
		{"both markers", "Hibás név vagy jelszó ... Teve Legyen Veled!", LoginAccepted},
		{"neither", "<html>maintenance</html>", LoginUnrecognized},
		{"empty", "", LoginUnrecognized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyLogin(tt.body, m))
		})
	}
}

func TestClassifyFeed(t *testing.T) {
	m := markers.Default()

	assert.Equal(t, ProbeCanFeed, ClassifyFeedProbe(`<input type="submit" value="Mehet!">`, m))
	assert.Equal(t, ProbeFull, ClassifyFeedProbe("<p>nothing to do</p>", m))

	assert.Equal(t, SubmissionSated, ClassifyFeedSubmission("A tevéd elég jóllakott.", m))
	assert.Equal(t, SubmissionSated, ClassifyFeedSubmission("tele a hasa", m))
	assert.Equal(t, SubmissionHungry, ClassifyFeedSubmission("Mehet!", m))
}

func TestClassifyLearn(t *testing.T) {
	m := markers.Default()

	assert.Equal(t, LearnLearned, ClassifyLearn("A tevéd megtanulta a trükköt", m))
	assert.Equal(t, LearnExhausted, ClassifyLearn(m.LearnExhausted, m))
	assert.Equal(t, LearnChoice, ClassifyLearn(m.LearnChoice+"<select name=tudomany>", m))
	assert.Equal(t, LearnNothing, ClassifyLearn("<html></html>", m))
	assert.Equal(t, LearnLearned, ClassifyLearn(m.LearnChoice+" megtanulta", m), "learned wins")
}

func TestClassifyPreference(t *testing.T) {
	assert.Equal(t, PreferenceApplied, ClassifyPreference("<html>ok</html>"))
	assert.Equal(t, PreferenceEmpty, ClassifyPreference("  \n"))
}
