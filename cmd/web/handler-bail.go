package main

import (
	"net/http"
)

func (app *application) requestBail(w http.ResponseWriter, r *http.Request) {
	suspectID, err := pathID(r, "suspectID")
	if err != nil {
		app.workflowError(w, r, err)
		return
	}
	var input struct {
		Amount int64 `json:"amount"`
	}
	if err = app.readJSON(w, r, &input); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	b, err := app.bail.Request(r.Context(), suspectID, input.Amount)
	if err != nil {
		app.workflowError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, b)
}

func (app *application) decideBail(w http.ResponseWriter, r *http.Request) {
	bailID, err := pathID(r, "bailID")
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
	b, err := app.bail.Decide(r.Context(), app.actorFromRequest(r), bailID, input.Approved)
	if err != nil {
		app.workflowError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, b)
}

func (app *application) initiateBailPayment(w http.ResponseWriter, r *http.Request) {
	bailID, err := pathID(r, "bailID")
	if err != nil {
		app.workflowError(w, r, err)
		return
	}
	redirectURL, err := app.bail.InitiatePayment(r.Context(), bailID)
	if err != nil {
		app.workflowError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, envelope{"redirect_url": redirectURL})
}

// bailPaymentCallback is invoked by the payment gateway, not by a client
// session, so it sits outside the CSRF-protected chain.
func (app *application) bailPaymentCallback(w http.ResponseWriter, r *http.Request) {
	bailID, err := pathID(r, "bailID")
	if err != nil {
		app.workflowError(w, r, err)
		return
	}
	var input struct {
		PaymentReference string `json:"payment_reference"`
	}
	if err = app.readJSON(w, r, &input); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	b, err := app.bail.ConfirmPayment(r.Context(), bailID, input.PaymentReference)
	if err != nil {
		app.workflowError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, b)
}
