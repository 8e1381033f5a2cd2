package main

import (
	"net/http"

	"github.com/jlaasonen/precinct/internal/workflow"
)

func (app *application) submitSuspectList(w http.ResponseWriter, r *http.Request) {
	caseID, err := pathID(r, "caseID")
	if err != nil {
		app.workflowError(w, r, err)
		return
	}
	var input struct {
		SuspectIDs []int64 `json:"suspect_ids"`
		Reasoning  string  `json:"reasoning"`
	}
	if err = app.readJSON(w, r, &input); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	sub, err := app.submissions.Submit(r.Context(), app.actorFromRequest(r), caseID, input.SuspectIDs, input.Reasoning)
	if err != nil {
		app.workflowError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, sub)
}

func (app *application) reviewSuspectList(w http.ResponseWriter, r *http.Request) {
	submissionID, err := pathID(r, "submissionID")
	if err != nil {
		app.workflowError(w, r, err)
		return
	}
	var input struct {
		Decision string `json:"decision"`
		Feedback string `json:"feedback"`
	}
	if err = app.readJSON(w, r, &input); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	sub, err := app.submissions.Review(r.Context(), app.actorFromRequest(r), submissionID,
		workflow.SubmissionStatus(input.Decision), input.Feedback)
	if err != nil {
		app.workflowError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, sub)
}
