package repositories_test

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/jlaasonen/precinct/internal/models"
	"github.com/jlaasonen/precinct/internal/payment"
	"github.com/jlaasonen/precinct/internal/repositories"
	"github.com/jlaasonen/precinct/internal/sqlite"
	"github.com/jlaasonen/precinct/internal/testhelpers"
	"github.com/jlaasonen/precinct/internal/workflow"
)

// testEnv wires every repository against a fresh in-memory database together
// with a full department roster, one actor per rank.
type testEnv struct {
	t   *testing.T
	ctx context.Context

	persons        *repositories.PersonRepository
	members        *repositories.MemberRepository
	cases          *repositories.CaseRepository
	suspects       *repositories.SuspectRepository
	tips           *repositories.TipRepository
	submissions    *repositories.SubmissionRepository
	interrogations *repositories.InterrogationRepository
	trials         *repositories.TrialRepository
	bail           *repositories.BailRepository

	citizen   models.Actor
	cadet     models.Actor
	officer   models.Actor
	detective models.Actor
	sergeant  models.Actor
	captain   models.Actor
	chief     models.Actor
	judge     models.Actor

	badgeSeq int
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	logger := testhelpers.NewLogger(io.Discard)

	dbs, err := sqlite.NewDatabase(ctx, ":memory:", logger)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, dbs.Close())
	})

	gateway := payment.NewRedirectGateway("https://sandbox.gateway.test")

	env := &testEnv{
		t:              t,
		ctx:            ctx,
		persons:        repositories.NewPersonRepository(dbs, logger),
		members:        repositories.NewMemberRepository(dbs, logger),
		cases:          repositories.NewCaseRepository(dbs, logger),
		suspects:       repositories.NewSuspectRepository(dbs, logger),
		tips:           repositories.NewTipRepository(dbs, logger),
		submissions:    repositories.NewSubmissionRepository(dbs, logger),
		interrogations: repositories.NewInterrogationRepository(dbs, logger),
		trials:         repositories.NewTrialRepository(dbs, logger),
		bail:           repositories.NewBailRepository(dbs, gateway, logger),
	}

	env.citizen = models.Actor{PersonID: env.newPersonID(), Role: workflow.RoleCitizen}
	env.cadet = env.enlist(workflow.RoleCadet)
	env.officer = env.enlist(workflow.RoleOfficer)
	env.detective = env.enlist(workflow.RoleDetective)
	env.sergeant = env.enlist(workflow.RoleSergeant)
	env.captain = env.enlist(workflow.RoleCaptain)
	env.chief = env.enlist(workflow.RolePoliceChief)
	env.judge = env.enlist(workflow.RoleJudge)

	return env
}

func (e *testEnv) newPersonID() int64 {
	e.t.Helper()
	id, err := e.persons.Upsert(e.ctx, &models.Person{
		NationalID:  uuid.NewString(),
		FullName:    gofakeit.Name(),
		PhoneNumber: gofakeit.Phone(),
	})
	require.NoError(e.t, err)
	return id
}

func (e *testEnv) enlist(role workflow.Role) models.Actor {
	e.t.Helper()
	personID := e.newPersonID()
	e.badgeSeq++
	memberID, err := e.members.Enlist(e.ctx, personID, fmt.Sprintf("B-%04d", e.badgeSeq), role)
	require.NoError(e.t, err)
	return models.Actor{PersonID: personID, MemberID: memberID, Role: role}
}

func (e *testEnv) fileComplaint(creator models.Actor, level workflow.CrimeLevel) *models.Case {
	e.t.Helper()
	c, err := e.cases.Submit(e.ctx, creator, repositories.SubmitCaseInput{
		Title:       "Stolen delivery van",
		Description: "A white van was taken from the depot overnight.",
		CrimeLevel:  level,
		Formation:   workflow.FormationComplaint,
		Statement:   "I saw two people drive off with the van around 2am.",
	})
	require.NoError(e.t, err)
	return c
}

// openCase walks a complaint through both intake approvals.
func (e *testEnv) openCase(creator models.Actor, level workflow.CrimeLevel) *models.Case {
	e.t.Helper()
	c := e.fileComplaint(creator, level)
	c, err := e.cases.Review(e.ctx, e.cadet, c.ID, workflow.ReviewApproved, "")
	require.NoError(e.t, err)
	require.Equal(e.t, workflow.CaseOfficerReview, c.Status)
	c, err = e.cases.Review(e.ctx, e.officer, c.ID, workflow.ReviewApproved, "")
	require.NoError(e.t, err)
	require.Equal(e.t, workflow.CaseOpen, c.Status)
	return c
}

func (e *testEnv) addSuspect(caseID int64) *models.Suspect {
	e.t.Helper()
	s, err := e.suspects.Add(e.ctx, e.detective, caseID, e.newPersonID(), "matches the depot camera footage")
	require.NoError(e.t, err)
	return s
}

// approvedSuspect files the suspect on a list and has the sergeant approve it,
// which issues the arrest warrant.
func (e *testEnv) approvedSuspect(caseID int64) *models.Suspect {
	e.t.Helper()
	s := e.addSuspect(caseID)
	sub, err := e.submissions.Submit(e.ctx, e.detective, caseID, []int64{s.ID}, "camera footage and two witness statements")
	require.NoError(e.t, err)
	_, err = e.submissions.Review(e.ctx, e.sergeant, sub.ID, workflow.SubmissionApproved, "")
	require.NoError(e.t, err)
	s, err = e.suspects.Get(e.ctx, s.ID)
	require.NoError(e.t, err)
	require.True(e.t, s.ApprovedBySergeant)
	return s
}

func (e *testEnv) arrestedSuspect(caseID int64) *models.Suspect {
	e.t.Helper()
	s := e.approvedSuspect(caseID)
	s, err := e.suspects.ChangeStatus(e.ctx, e.detective, s.ID, workflow.SuspectArrested, nil)
	require.NoError(e.t, err)
	return s
}

// submittedInterrogation arrests a suspect, opens the interrogation and has
// both raters score it.
func (e *testEnv) submittedInterrogation(caseID int64, detectiveRating, sergeantRating int) (*models.Suspect, *models.Interrogation) {
	e.t.Helper()
	s := e.arrestedSuspect(caseID)
	i, err := e.interrogations.Create(e.ctx, e.sergeant, s.ID, e.detective.MemberID, e.sergeant.MemberID)
	require.NoError(e.t, err)
	_, err = e.interrogations.SubmitRating(e.ctx, e.detective, i.ID, detectiveRating, "kept changing the story")
	require.NoError(e.t, err)
	i, err = e.interrogations.SubmitRating(e.ctx, e.sergeant, i.ID, sergeantRating, "no credible alibi")
	require.NoError(e.t, err)
	return s, i
}

func ptr[T any](v T) *T { return &v }

var occurredAt = time.Date(2026, 3, 14, 2, 10, 0, 0, time.UTC)
