package main

import (
	"net/http"

	"github.com/jlaasonen/precinct/internal/workflow"
)

// submitTip accepts a citizen tip without authentication. The submitter
// identifies with a national ID for later reward redemption.
func (app *application) submitTip(w http.ResponseWriter, r *http.Request) {
	var input struct {
		NationalID  string `json:"national_id"`
		Information string `json:"information"`
		SuspectID   *int64 `json:"suspect_id"`
	}
	if err := app.readJSON(w, r, &input); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	tip, err := app.tips.Submit(r.Context(), input.NationalID, input.Information, input.SuspectID)
	if err != nil {
		app.workflowError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, tip)
}

func (app *application) officerReviewTip(w http.ResponseWriter, r *http.Request) {
	tipID, err := pathID(r, "tipID")
	if err != nil {
		app.workflowError(w, r, err)
		return
	}
	var input struct {
		Approved bool `json:"approved"`
	}
	if err = app.readJSON(w, r, &input); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	tip, err := app.tips.OfficerReview(r.Context(), app.actorFromRequest(r), tipID, input.Approved)
	if err != nil {
		app.workflowError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, tip)
}

func (app *application) detectiveReviewTip(w http.ResponseWriter, r *http.Request) {
	tipID, err := pathID(r, "tipID")
	if err != nil {
		app.workflowError(w, r, err)
		return
	}
	var input struct {
		Approved bool `json:"approved"`
	}
	if err = app.readJSON(w, r, &input); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	tip, err := app.tips.DetectiveReview(r.Context(), app.actorFromRequest(r), tipID, input.Approved)
	if err != nil {
		app.workflowError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, tip)
}

// verifyReward looks up a redemption code. It responds identically for
// unknown codes and mismatched national IDs.
func (app *application) verifyReward(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	nationalID := r.URL.Query().Get("national_id")
	if nationalID == "" {
		app.workflowError(w, r, workflow.Invalid("national_id", "must not be empty"))
		return
	}
	check, err := app.tips.VerifyReward(r.Context(), code, nationalID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, check)
}
