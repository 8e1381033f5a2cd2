package main

import (
	"net/http"

	"github.com/jlaasonen/precinct/internal/workflow"
)

func (app *application) addSuspect(w http.ResponseWriter, r *http.Request) {
	caseID, err := pathID(r, "caseID")
	if err != nil {
		app.workflowError(w, r, err)
		return
	}
	var input struct {
		PersonID int64  `json:"person_id"`
		Reason   string `json:"reason"`
	}
	if err = app.readJSON(w, r, &input); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	s, err := app.suspects.Add(r.Context(), app.actorFromRequest(r), caseID, input.PersonID, input.Reason)
	if err != nil {
		app.workflowError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, s)
}

func (app *application) changeSuspectStatus(w http.ResponseWriter, r *http.Request) {
	suspectID, err := pathID(r, "suspectID")
	if err != nil {
		app.workflowError(w, r, err)
		return
	}
	var input struct {
		Status      string `json:"status"`
		DangerScore *int   `json:"danger_score"`
	}
	if err = app.readJSON(w, r, &input); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	s, err := app.suspects.ChangeStatus(r.Context(), app.actorFromRequest(r), suspectID,
		workflow.SuspectStatus(input.Status), input.DangerScore)
	if err != nil {
		app.workflowError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, s)
}

// mostWanted is the public board of intensive-pursuit suspects.
func (app *application) mostWanted(w http.ResponseWriter, r *http.Request) {
	entries, err := app.suspects.MostWanted(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, envelope{"most_wanted": entries})
}
