package repositories_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlaasonen/precinct/internal/workflow"
)

func TestCreateInterrogation(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	c := env.openCase(env.citizen, workflow.CrimeLevel(2))
	s := env.arrestedSuspect(c.ID)

	i, err := env.interrogations.Create(env.ctx, env.sergeant, s.ID, env.detective.MemberID, env.sergeant.MemberID)
	require.NoError(t, err)
	assert.Equal(t, workflow.InterrogationPending, i.Status)
	assert.Nil(t, i.DetectiveGuiltRating)
	assert.Nil(t, i.SergeantGuiltRating)

	c, err = env.cases.Get(env.ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, workflow.CaseInterrogation, c.Status)

	t.Run("requires an arrested suspect", func(t *testing.T) {
		loose := env.addSuspect(env.openCase(env.citizen, workflow.CrimeLevel(2)).ID)
		_, err := env.interrogations.Create(env.ctx, env.sergeant, loose.ID, env.detective.MemberID, env.sergeant.MemberID)
		var violation *workflow.RuleViolation
		require.ErrorAs(t, err, &violation)
		assert.Equal(t, "suspect_arrested", violation.Rule)
	})

	t.Run("requires sergeant rank or above", func(t *testing.T) {
		_, err := env.interrogations.Create(env.ctx, env.detective, s.ID, env.detective.MemberID, env.sergeant.MemberID)
		var denied *workflow.PermissionDenied
		require.ErrorAs(t, err, &denied)
	})

	t.Run("raters must hold the named ranks", func(t *testing.T) {
		_, err := env.interrogations.Create(env.ctx, env.sergeant, s.ID, env.officer.MemberID, env.sergeant.MemberID)
		var validation *workflow.ValidationError
		require.ErrorAs(t, err, &validation)
	})
}

func TestSubmitRatings(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	c := env.openCase(env.citizen, workflow.CrimeLevel(2))
	s := env.arrestedSuspect(c.ID)
	i, err := env.interrogations.Create(env.ctx, env.sergeant, s.ID, env.detective.MemberID, env.sergeant.MemberID)
	require.NoError(t, err)

	t.Run("rating must be in range", func(t *testing.T) {
		_, err := env.interrogations.SubmitRating(env.ctx, env.detective, i.ID, 0, "")
		var validation *workflow.ValidationError
		require.ErrorAs(t, err, &validation)
		_, err = env.interrogations.SubmitRating(env.ctx, env.detective, i.ID, 11, "")
		require.ErrorAs(t, err, &validation)
	})

	t.Run("only the named raters may score", func(t *testing.T) {
		_, err := env.interrogations.SubmitRating(env.ctx, env.captain, i.ID, 5, "")
		var denied *workflow.PermissionDenied
		require.ErrorAs(t, err, &denied)
	})

	i, err = env.interrogations.SubmitRating(env.ctx, env.detective, i.ID, 9, "confessed to being on site")
	require.NoError(t, err)
	assert.Equal(t, workflow.InterrogationPending, i.Status)
	_, ok := i.AverageRating()
	assert.False(t, ok)

	t.Run("a rating is written once", func(t *testing.T) {
		_, err := env.interrogations.SubmitRating(env.ctx, env.detective, i.ID, 3, "second thoughts")
		var conflict *workflow.StateConflict
		require.ErrorAs(t, err, &conflict)
	})

	i, err = env.interrogations.SubmitRating(env.ctx, env.sergeant, i.ID, 8, "story has holes")
	require.NoError(t, err)
	assert.Equal(t, workflow.InterrogationSubmitted, i.Status)

	avg, ok := i.AverageRating()
	require.True(t, ok)
	assert.InDelta(t, 8.5, avg, 0.001)
}

func TestCaptainDecision(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	c := env.openCase(env.citizen, workflow.CrimeLevel(2))
	_, i := env.submittedInterrogation(c.ID, 9, 8)

	t.Run("requires the guilt capability", func(t *testing.T) {
		_, err := env.interrogations.CaptainDecision(env.ctx, env.sergeant, i.ID, workflow.CaptainGuilty, "clear cut")
		var denied *workflow.PermissionDenied
		require.ErrorAs(t, err, &denied)
	})

	t.Run("requires reasoning", func(t *testing.T) {
		_, err := env.interrogations.CaptainDecision(env.ctx, env.captain, i.ID, workflow.CaptainGuilty, "")
		var validation *workflow.ValidationError
		require.ErrorAs(t, err, &validation)
	})

	decision, err := env.interrogations.CaptainDecision(env.ctx, env.captain, i.ID,
		workflow.CaptainGuilty, "confession corroborated by camera footage")
	require.NoError(t, err)
	assert.False(t, decision.RequiresChiefApproval)

	c, err = env.cases.Get(env.ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, workflow.CaseTrialPending, c.Status)
}

func TestCaptainDecisionBeforeRatingsConflicts(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	c := env.openCase(env.citizen, workflow.CrimeLevel(2))
	s := env.arrestedSuspect(c.ID)
	i, err := env.interrogations.Create(env.ctx, env.sergeant, s.ID, env.detective.MemberID, env.sergeant.MemberID)
	require.NoError(t, err)

	_, err = env.interrogations.CaptainDecision(env.ctx, env.captain, i.ID, workflow.CaptainGuilty, "too early")
	var conflict *workflow.StateConflict
	require.ErrorAs(t, err, &conflict)
}

func TestChiefEscalation(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	// A major crime: a guilty decision must escalate to the chief.
	c := env.openCase(env.citizen, workflow.CrimeLevel(1))
	s, i := env.submittedInterrogation(c.ID, 10, 9)

	decision, err := env.interrogations.CaptainDecision(env.ctx, env.captain, i.ID,
		workflow.CaptainGuilty, "armed robbery with matching ballistics")
	require.NoError(t, err)
	assert.True(t, decision.RequiresChiefApproval)

	c, err = env.cases.Get(env.ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, workflow.CaseInterrogation, c.Status)

	t.Run("trial is blocked until the chief rules", func(t *testing.T) {
		_, err := env.trials.Create(env.ctx, env.captain, c.ID, s.ID, env.judge.MemberID, "ready for court")
		var violation *workflow.RuleViolation
		require.ErrorAs(t, err, &violation)
		assert.Equal(t, "guilty_decision", violation.Rule)
	})

	t.Run("only the chief rules on escalations", func(t *testing.T) {
		_, err := env.interrogations.ChiefDecision(env.ctx, env.captain, decision.ID, true, "")
		var denied *workflow.PermissionDenied
		require.ErrorAs(t, err, &denied)
	})

	chiefDecision, err := env.interrogations.ChiefDecision(env.ctx, env.chief, decision.ID, true, "evidence holds up")
	require.NoError(t, err)
	assert.True(t, chiefDecision.Approved)

	c, err = env.cases.Get(env.ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, workflow.CaseTrialPending, c.Status)

	t.Run("an escalation is ruled on once", func(t *testing.T) {
		_, err := env.interrogations.ChiefDecision(env.ctx, env.chief, decision.ID, false, "")
		var conflict *workflow.StateConflict
		require.ErrorAs(t, err, &conflict)
	})

	t.Run("trial can proceed after approval", func(t *testing.T) {
		trial, err := env.trials.Create(env.ctx, env.captain, c.ID, s.ID, env.judge.MemberID, "ready for court")
		require.NoError(t, err)
		assert.Equal(t, workflow.TrialInProgress, trial.Status)
	})
}

func TestChiefDecisionWithoutEscalation(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	c := env.openCase(env.citizen, workflow.CrimeLevel(3))
	_, i := env.submittedInterrogation(c.ID, 6, 7)
	decision, err := env.interrogations.CaptainDecision(env.ctx, env.captain, i.ID,
		workflow.CaptainGuilty, "petty theft caught on tape")
	require.NoError(t, err)
	require.False(t, decision.RequiresChiefApproval)

	_, err = env.interrogations.ChiefDecision(env.ctx, env.chief, decision.ID, true, "")
	var violation *workflow.RuleViolation
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "chief_escalation", violation.Rule)
}
