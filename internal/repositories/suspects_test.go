package repositories_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlaasonen/precinct/internal/workflow"
)

func TestAddSuspect(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	c := env.openCase(env.citizen, workflow.CrimeLevel(2))
	s := env.addSuspect(c.ID)

	assert.Equal(t, workflow.SuspectUnderPursuit, s.Status)
	assert.False(t, s.ApprovedBySergeant)

	c, err := env.cases.Get(env.ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, workflow.CaseUnderInvestigation, c.Status)
}

func TestAddSuspectAuthorization(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	c := env.openCase(env.citizen, workflow.CrimeLevel(2))

	t.Run("requires detective rank or above", func(t *testing.T) {
		_, err := env.suspects.Add(env.ctx, env.officer, c.ID, env.newPersonID(), "seen near the depot")
		var denied *workflow.PermissionDenied
		require.ErrorAs(t, err, &denied)
	})

	t.Run("requires a reason", func(t *testing.T) {
		_, err := env.suspects.Add(env.ctx, env.detective, c.ID, env.newPersonID(), "")
		var validation *workflow.ValidationError
		require.ErrorAs(t, err, &validation)
	})

	t.Run("rejected case accepts no suspects", func(t *testing.T) {
		rejected := env.fileComplaint(env.citizen, workflow.CrimeLevel(3))
		for range workflow.RejectionThreshold {
			_, err := env.cases.Review(env.ctx, env.cadet, rejected.ID, workflow.ReviewRejected, "not actionable")
			require.NoError(t, err)
			_ = env.cases.Resubmit(env.ctx, env.citizen, rejected.ID)
		}
		_, err := env.suspects.Add(env.ctx, env.detective, rejected.ID, env.newPersonID(), "seen nearby")
		var conflict *workflow.StateConflict
		require.ErrorAs(t, err, &conflict)
	})
}

func TestIntensivePursuitComputesReward(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	c := env.openCase(env.citizen, workflow.CrimeLevel(2))
	s := env.addSuspect(c.ID)

	s, err := env.suspects.ChangeStatus(env.ctx, env.detective, s.ID, workflow.SuspectIntensivePursuit, ptr(5))
	require.NoError(t, err)
	assert.Equal(t, workflow.SuspectIntensivePursuit, s.Status)
	// level 2 multiplier is 2, danger 5, base 20M.
	assert.Equal(t, int64(200_000_000), s.RewardAmount)

	t.Run("de-escalation resets the reward", func(t *testing.T) {
		s, err := env.suspects.ChangeStatus(env.ctx, env.detective, s.ID, workflow.SuspectUnderPursuit, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(0), s.RewardAmount)
		assert.Equal(t, 5, s.DangerScore)
	})

	t.Run("zero danger still pays the base multiplier", func(t *testing.T) {
		s, err := env.suspects.ChangeStatus(env.ctx, env.detective, s.ID, workflow.SuspectIntensivePursuit, ptr(0))
		require.NoError(t, err)
		assert.Equal(t, int64(40_000_000), s.RewardAmount)
	})
}

func TestArrestRequiresSergeantApproval(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	c := env.openCase(env.citizen, workflow.CrimeLevel(2))
	s := env.addSuspect(c.ID)

	_, err := env.suspects.ChangeStatus(env.ctx, env.detective, s.ID, workflow.SuspectArrested, nil)
	var violation *workflow.RuleViolation
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "arrest_approval", violation.Rule)

	s = env.approvedSuspect(env.openCase(env.citizen, workflow.CrimeLevel(2)).ID)
	assert.True(t, s.ArrestWarrantIssued)
	s, err = env.suspects.ChangeStatus(env.ctx, env.detective, s.ID, workflow.SuspectArrested, nil)
	require.NoError(t, err)
	assert.Equal(t, workflow.SuspectArrested, s.Status)
}

func TestSuspectStatusTransitions(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	c := env.openCase(env.citizen, workflow.CrimeLevel(3))
	s := env.addSuspect(c.ID)

	s, err := env.suspects.ChangeStatus(env.ctx, env.detective, s.ID, workflow.SuspectCleared, nil)
	require.NoError(t, err)
	assert.Equal(t, workflow.SuspectCleared, s.Status)

	// Cleared is terminal.
	_, err = env.suspects.ChangeStatus(env.ctx, env.detective, s.ID, workflow.SuspectUnderPursuit, nil)
	var conflict *workflow.StateConflict
	require.ErrorAs(t, err, &conflict)
}

func TestMostWantedBoard(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	c := env.openCase(env.citizen, workflow.CrimeLevel(1))
	low := env.addSuspect(c.ID)
	high := env.addSuspect(c.ID)
	hidden := env.addSuspect(c.ID)

	_, err := env.suspects.ChangeStatus(env.ctx, env.detective, low.ID, workflow.SuspectIntensivePursuit, ptr(2))
	require.NoError(t, err)
	_, err = env.suspects.ChangeStatus(env.ctx, env.detective, high.ID, workflow.SuspectIntensivePursuit, ptr(9))
	require.NoError(t, err)
	// Still under plain pursuit, must not be listed.
	_ = hidden

	entries, err := env.suspects.MostWanted(env.ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, high.ID, entries[0].SuspectID)
	assert.Equal(t, low.ID, entries[1].SuspectID)
	assert.Greater(t, entries[0].RewardAmount, entries[1].RewardAmount)
	assert.Equal(t, c.CaseNumber, entries[0].CaseNumber)
}
