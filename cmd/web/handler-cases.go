package main

import (
	"net/http"
	"time"

	"github.com/jlaasonen/precinct/internal/repositories"
	"github.com/jlaasonen/precinct/internal/workflow"
)

func (app *application) submitCase(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Title       string     `json:"title"`
		Description string     `json:"description"`
		CrimeLevel  int        `json:"crime_level"`
		Formation   string     `json:"formation_type"`
		Statement   string     `json:"statement"`
		Location    string     `json:"location"`
		OccurredAt  *time.Time `json:"occurred_at"`
	}
	if err := app.readJSON(w, r, &input); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	c, err := app.cases.Submit(r.Context(), app.actorFromRequest(r), repositories.SubmitCaseInput{
		Title:       input.Title,
		Description: input.Description,
		CrimeLevel:  workflow.CrimeLevel(input.CrimeLevel),
		Formation:   workflow.FormationType(input.Formation),
		Statement:   input.Statement,
		Location:    input.Location,
		OccurredAt:  input.OccurredAt,
	})
	if err != nil {
		app.workflowError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, c)
}

func (app *application) getCase(w http.ResponseWriter, r *http.Request) {
	caseID, err := pathID(r, "caseID")
	if err != nil {
		app.workflowError(w, r, err)
		return
	}
	c, err := app.cases.Get(r.Context(), caseID)
	if err != nil {
		app.workflowError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, c)
}

func (app *application) caseSummary(w http.ResponseWriter, r *http.Request) {
	caseID, err := pathID(r, "caseID")
	if err != nil {
		app.workflowError(w, r, err)
		return
	}
	summary, err := app.cases.Summary(r.Context(), caseID)
	if err != nil {
		app.workflowError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, summary)
}

func (app *application) joinComplaint(w http.ResponseWriter, r *http.Request) {
	caseID, err := pathID(r, "caseID")
	if err != nil {
		app.workflowError(w, r, err)
		return
	}
	var input struct {
		Statement string `json:"statement"`
	}
	if err = app.readJSON(w, r, &input); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	if err = app.cases.JoinComplaint(r.Context(), app.actorFromRequest(r), caseID, input.Statement); err != nil {
		app.workflowError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, envelope{"status": "joined"})
}

func (app *application) updateDraft(w http.ResponseWriter, r *http.Request) {
	caseID, err := pathID(r, "caseID")
	if err != nil {
		app.workflowError(w, r, err)
		return
	}
	var input struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Statement   string `json:"statement"`
	}
	if err = app.readJSON(w, r, &input); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	err = app.cases.UpdateDraft(r.Context(), app.actorFromRequest(r), caseID,
		input.Title, input.Description, input.Statement)
	if err != nil {
		app.workflowError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, envelope{"status": "updated"})
}

func (app *application) resubmitCase(w http.ResponseWriter, r *http.Request) {
	caseID, err := pathID(r, "caseID")
	if err != nil {
		app.workflowError(w, r, err)
		return
	}
	if err = app.cases.Resubmit(r.Context(), app.actorFromRequest(r), caseID); err != nil {
		app.workflowError(w, r, err)
		return
	}
	c, err := app.cases.Get(r.Context(), caseID)
	if err != nil {
		app.workflowError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, c)
}

func (app *application) reviewCase(w http.ResponseWriter, r *http.Request) {
	caseID, err := pathID(r, "caseID")
	if err != nil {
		app.workflowError(w, r, err)
		return
	}
	var input struct {
		Decision        string `json:"decision"`
		RejectionReason string `json:"rejection_reason"`
	}
	if err = app.readJSON(w, r, &input); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	c, err := app.cases.Review(r.Context(), app.actorFromRequest(r), caseID,
		workflow.ReviewDecision(input.Decision), input.RejectionReason)
	if err != nil {
		app.workflowError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, c)
}
