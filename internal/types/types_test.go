package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionResultConstructors(t *testing.T) {
	tests := []struct {
		name      string
		result    ActionResult
		ok        bool
		transport bool
		domain    bool
		kind      FailureKind
	}{
		{name: "success", result: Succeeded(""), ok: true, kind: KindNone},
		{name: "transport", result: TransportFailure(""), transport: true, kind: KindTransport},
		{name: "domain", result: DomainFailure(""), domain: true, kind: KindDomain},
		{name: "not authenticated", result: NotAuthenticated(), kind: KindNotAuthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ok, tt.result.OK())
			assert.Equal(t, tt.transport, tt.result.IsTransport())
			assert.Equal(t, tt.domain, tt.result.IsDomain())
			assert.Equal(t, tt.kind, tt.result.Kind)
			assert.NotEmpty(t, tt.result.Message)
		})
	}
}

func TestActionResultJSON(t *testing.T) {
	data, err := json.Marshal(Succeeded("fed 2 times and satisfied"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"message":"fed 2 times and satisfied"}`, string(data))

	data, err = json.Marshal(NotAuthenticated())
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"kind":"not_authenticated","message":"Not logged in"}`, string(data))
}

func TestActionResultString(t *testing.T) {
	assert.Equal(t, "success: ok", Succeeded("ok").String())
	assert.Equal(t, "failure (transport): boom", TransportFailure("boom").String())
	assert.Equal(t, "unknown", Outcome(0).String())
	assert.Equal(t, "unknown", FailureKind(9).String())
}

func TestCredentialsValidate(t *testing.T) {
	assert.NoError(t, Credentials{Username: "bob", Password: "secret"}.Validate())
	assert.Error(t, Credentials{Username: "bob"}.Validate())
	assert.Error(t, Credentials{Password: "secret"}.Validate())
}

func TestFeedingSession(t *testing.T) {
	s := NewFeedingSession()
	assert.Equal(t, MaxFeedAttempts, s.MaxAttempts)
	assert.False(t, s.Exhausted())

	s.AttemptsMade = MaxFeedAttempts
	assert.True(t, s.Exhausted())
}

func TestNormalizedMethod(t *testing.T) {
	assert.Equal(t, "GET", ProxyRequest{}.NormalizedMethod())
	assert.Equal(t, "GET", ProxyRequest{Method: "get"}.NormalizedMethod())
	assert.Equal(t, "POST", ProxyRequest{Method: "post"}.NormalizedMethod())
	assert.Equal(t, "DELETE", ProxyRequest{Method: "DELETE"}.NormalizedMethod())
}

func TestReportSummary(t *testing.T) {
	report := AutoRunReport{
		Status: StatusSuccess,
		Steps: []StepResult{
			{Step: StepLogin, Result: Succeeded("logged in")},
			{Step: StepFeed, Result: TransportFailure("down"), Warning: true},
		},
	}

	feed, ok := report.Step(StepFeed)
	require.True(t, ok)
	assert.True(t, feed.Warning)
	_, ok = report.Step(StepGuess)
	assert.False(t, ok)

	assert.Equal(t, 1, report.Warnings())
	assert.Equal(t, "auto run finished with 1 warning(s)", report.Summary())
	assert.Equal(t, "auto run finished", AutoRunReport{Status: StatusSuccess}.Summary())
	assert.Equal(t, "auto run finished, logout failed", AutoRunReport{Status: StatusWarning}.Summary())
	assert.Equal(t, "auto run aborted", AutoRunReport{Status: StatusFailure}.Summary())

	aborted := AutoRunReport{
		Status: StatusFailure,
		Steps:  []StepResult{{Step: StepLogin, Result: DomainFailure("invalid credentials")}},
	}
	assert.Equal(t, "auto run aborted: invalid credentials", aborted.Summary())
}
