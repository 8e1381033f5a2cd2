package main

import (
	"net/http"

	"github.com/jlaasonen/precinct/internal/workflow"
)

func (app *application) createInterrogation(w http.ResponseWriter, r *http.Request) {
	suspectID, err := pathID(r, "suspectID")
	if err != nil {
		app.workflowError(w, r, err)
		return
	}
	var input struct {
		DetectiveID int64 `json:"detective_id"`
		SergeantID  int64 `json:"sergeant_id"`
	}
	if err = app.readJSON(w, r, &input); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	i, err := app.interrogations.Create(r.Context(), app.actorFromRequest(r), suspectID,
		input.DetectiveID, input.SergeantID)
	if err != nil {
		app.workflowError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, i)
}

func (app *application) submitRating(w http.ResponseWriter, r *http.Request) {
	interrogationID, err := pathID(r, "interrogationID")
	if err != nil {
		app.workflowError(w, r, err)
		return
	}
	var input struct {
		Rating int    `json:"rating"`
		Notes  string `json:"notes"`
	}
	if err = app.readJSON(w, r, &input); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	i, err := app.interrogations.SubmitRating(r.Context(), app.actorFromRequest(r), interrogationID,
		input.Rating, input.Notes)
	if err != nil {
		app.workflowError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, i)
}

func (app *application) captainDecision(w http.ResponseWriter, r *http.Request) {
	interrogationID, err := pathID(r, "interrogationID")
	if err != nil {
		app.workflowError(w, r, err)
		return
	}
	var input struct {
		Decision  string `json:"decision"`
		Reasoning string `json:"reasoning"`
	}
	if err = app.readJSON(w, r, &input); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	decision, err := app.interrogations.CaptainDecision(r.Context(), app.actorFromRequest(r), interrogationID,
		workflow.CaptainVerdict(input.Decision), input.Reasoning)
	if err != nil {
		app.workflowError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, decision)
}

func (app *application) chiefDecision(w http.ResponseWriter, r *http.Request) {
	decisionID, err := pathID(r, "decisionID")
	if err != nil {
		app.workflowError(w, r, err)
		return
	}
	var input struct {
		Approved bool   `json:"approved"`
		Comments string `json:"comments"`
	}
	if err = app.readJSON(w, r, &input); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	decision, err := app.interrogations.ChiefDecision(r.Context(), app.actorFromRequest(r), decisionID,
		input.Approved, input.Comments)
	if err != nil {
		app.workflowError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, decision)
}
