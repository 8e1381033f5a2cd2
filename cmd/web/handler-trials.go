package main

import (
	"net/http"

	"github.com/jlaasonen/precinct/internal/workflow"
)

func (app *application) createTrial(w http.ResponseWriter, r *http.Request) {
	caseID, err := pathID(r, "caseID")
	if err != nil {
		app.workflowError(w, r, err)
		return
	}
	var input struct {
		SuspectID    int64  `json:"suspect_id"`
		JudgeID      int64  `json:"judge_id"`
		CaptainNotes string `json:"captain_notes"`
	}
	if err = app.readJSON(w, r, &input); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	trial, err := app.trials.Create(r.Context(), app.actorFromRequest(r), caseID,
		input.SuspectID, input.JudgeID, input.CaptainNotes)
	if err != nil {
		app.workflowError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, trial)
}

func (app *application) deliverVerdict(w http.ResponseWriter, r *http.Request) {
	trialID, err := pathID(r, "trialID")
	if err != nil {
		app.workflowError(w, r, err)
		return
	}
	var input struct {
		Decision              string `json:"decision"`
		Reasoning             string `json:"reasoning"`
		PunishmentTitle       string `json:"punishment_title"`
		PunishmentDescription string `json:"punishment_description"`
	}
	if err = app.readJSON(w, r, &input); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	trial, err := app.trials.DeliverVerdict(r.Context(), app.actorFromRequest(r), trialID,
		workflow.TrialDecision(input.Decision), input.Reasoning,
		input.PunishmentTitle, input.PunishmentDescription)
	if err != nil {
		app.workflowError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, trial)
}
