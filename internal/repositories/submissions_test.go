package repositories_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlaasonen/precinct/internal/workflow"
)

func TestSubmitSuspectList(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	c := env.openCase(env.citizen, workflow.CrimeLevel(2))
	first := env.addSuspect(c.ID)
	second := env.addSuspect(c.ID)

	sub, err := env.submissions.Submit(env.ctx, env.detective, c.ID,
		[]int64{first.ID, second.ID}, "both identified on camera and by witnesses")
	require.NoError(t, err)
	assert.Equal(t, workflow.SubmissionPending, sub.Status)
	assert.Equal(t, []int64{first.ID, second.ID}, sub.SuspectIDs)

	c, err = env.cases.Get(env.ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, c.DetectiveID)
	assert.Equal(t, env.detective.MemberID, *c.DetectiveID)

	t.Run("only one pending submission per case", func(t *testing.T) {
		_, err := env.submissions.Submit(env.ctx, env.detective, c.ID,
			[]int64{first.ID}, "narrowed down to one")
		var conflict *workflow.StateConflict
		require.ErrorAs(t, err, &conflict)
	})
}

func TestSubmitSuspectListValidation(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	c := env.openCase(env.citizen, workflow.CrimeLevel(2))
	s := env.addSuspect(c.ID)
	other := env.openCase(env.citizen, workflow.CrimeLevel(2))
	foreign := env.addSuspect(other.ID)

	var validation *workflow.ValidationError
	_, err := env.submissions.Submit(env.ctx, env.detective, c.ID, nil, "no one yet")
	require.ErrorAs(t, err, &validation)
	_, err = env.submissions.Submit(env.ctx, env.detective, c.ID, []int64{s.ID}, "")
	require.ErrorAs(t, err, &validation)
	_, err = env.submissions.Submit(env.ctx, env.detective, c.ID, []int64{foreign.ID}, "wrong case link")
	require.ErrorAs(t, err, &validation)

	var denied *workflow.PermissionDenied
	_, err = env.submissions.Submit(env.ctx, env.officer, c.ID, []int64{s.ID}, "not my call")
	require.ErrorAs(t, err, &denied)
}

func TestSubmissionApproval(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	c := env.openCase(env.citizen, workflow.CrimeLevel(2))
	s := env.addSuspect(c.ID)
	sub, err := env.submissions.Submit(env.ctx, env.detective, c.ID, []int64{s.ID}, "strong witness identification")
	require.NoError(t, err)

	sub, err = env.submissions.Review(env.ctx, env.sergeant, sub.ID, workflow.SubmissionApproved, "")
	require.NoError(t, err)
	assert.Equal(t, workflow.SubmissionApproved, sub.Status)

	s, err = env.suspects.Get(env.ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, s.ApprovedBySergeant)
	assert.True(t, s.ArrestWarrantIssued)

	c, err = env.cases.Get(env.ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, workflow.CaseArrestApproved, c.Status)
	require.NotNil(t, c.SergeantID)
	assert.Equal(t, env.sergeant.MemberID, *c.SergeantID)

	t.Run("approval is not repeatable", func(t *testing.T) {
		_, err := env.submissions.Review(env.ctx, env.sergeant, sub.ID, workflow.SubmissionApproved, "")
		var conflict *workflow.StateConflict
		require.ErrorAs(t, err, &conflict)
	})
}

func TestSubmissionRejection(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	c := env.openCase(env.citizen, workflow.CrimeLevel(2))
	s := env.addSuspect(c.ID)
	sub, err := env.submissions.Submit(env.ctx, env.detective, c.ID, []int64{s.ID}, "circumstantial so far")
	require.NoError(t, err)

	t.Run("rejection requires feedback", func(t *testing.T) {
		_, err := env.submissions.Review(env.ctx, env.sergeant, sub.ID, workflow.SubmissionRejected, "")
		var validation *workflow.ValidationError
		require.ErrorAs(t, err, &validation)
	})

	sub, err = env.submissions.Review(env.ctx, env.sergeant, sub.ID, workflow.SubmissionRejected, "need physical evidence")
	require.NoError(t, err)
	assert.Equal(t, workflow.SubmissionRejected, sub.Status)
	assert.Equal(t, "need physical evidence", sub.SergeantFeedback)

	s, err = env.suspects.Get(env.ctx, s.ID)
	require.NoError(t, err)
	assert.False(t, s.ApprovedBySergeant)

	t.Run("detective may file a revised list", func(t *testing.T) {
		revised, err := env.submissions.Submit(env.ctx, env.detective, c.ID,
			[]int64{s.ID}, "fingerprints recovered from the door handle")
		require.NoError(t, err)
		assert.Equal(t, workflow.SubmissionPending, revised.Status)
	})

	t.Run("only a sergeant reviews lists", func(t *testing.T) {
		_, err := env.submissions.Review(env.ctx, env.detective, sub.ID, workflow.SubmissionApproved, "")
		var denied *workflow.PermissionDenied
		require.ErrorAs(t, err, &denied)
	})
}
